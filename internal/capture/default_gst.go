//go:build gst

package capture

// DefaultOpener returns the GStreamer-backed camera opener.
func DefaultOpener() Opener { return &GStreamer{} }
