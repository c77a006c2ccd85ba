//go:build !gst

package capture

// DefaultOpener returns the synthetic opener. Build with `-tags=gst` for
// real camera capture through GStreamer.
func DefaultOpener() Opener { return &Synthetic{} }
