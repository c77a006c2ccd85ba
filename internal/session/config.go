package session

import (
	"time"

	"github.com/rs/zerolog"

	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	// defaultSettleDelay is the post-teardown quiescence window. Camera and
	// GPU driver teardown completion is not reliably observable on every
	// device, so a short fixed window after Stop returns is kept as a
	// fallback on top of the adapters' explicit stop completion.
	defaultSettleDelay  = 250 * time.Millisecond
	defaultStartTimeout = 15 * time.Second
)

// Config encapsulates all tunables and collaborators for Coordinator
// construction.
type Config struct {
	Registry  *engine.Registry
	Deps      engine.Deps
	Publisher EventPublisher
	Logger    zerolog.Logger
	// SettleDelay is the quiescence window between a completed teardown and
	// the next start. Zero selects the default; negative disables it.
	SettleDelay time.Duration
	// StartTimeout bounds adapter Start. Zero selects the default; negative
	// disables it.
	StartTimeout time.Duration
}

// NewWithConfig constructs a Coordinator from Config.
func NewWithConfig(cfg Config) *Coordinator {
	if cfg.Registry == nil {
		cfg.Registry = engine.NewRegistry()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = noopPublisher{}
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.StartTimeout == 0 {
		cfg.StartTimeout = defaultStartTimeout
	}
	return &Coordinator{
		cfg:      cfg,
		log:      cfg.Logger,
		pub:      cfg.Publisher,
		state:    StateIdle,
		sel:      engine.Selection{Mode: types.ModeNone},
		switchCh: make(chan struct{}, 1),
	}
}
