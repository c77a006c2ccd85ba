// Package session provides the mode/session lifecycle coordinator: it owns
// at most one active engine adapter (AR or pose tracking) at a time and
// guarantees that switching away from a mode fully releases its camera
// stream, GPU context, and detector before the next mode may acquire them.
// It is structured into small files by concern:
//
//   - coordinator.go: core Coordinator type, constructor, read accessors.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: lifecycle State and the Snapshot projection.
//   - switch.go: RequestSwitch, the serialized teardown/settle/start path.
//   - ops.go: Reset/Place forwarding to the active adapter.
//   - errors.go: error types and helpers (IsBusy, IsNoSession, ...).
//   - events.go: EventPublisher contract and the noop default.
//   - eventpub_memory.go: in-memory publisher for tests.
//   - eventpub_fanout.go: fan-out publisher feeding the SSE endpoint.
//   - status_report.go: Status/Snapshot reporting helpers.
//   - metrics.go: prometheus collectors for switch outcomes and timing.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (NewWithConfig, RequestSwitch, CurrentMode, Status,
// Reset, Place, Close). Internal state is subject to change.
package session
