//go:build !tflite

package pose

import "sessiond/internal/engine"

// Without the tflite runtime compiled in, only demo mode (synthetic
// detector) can run pose tracking.
func newTFLiteDetector(cfg DetectorConfig) (Detector, error) {
	return nil, engine.ErrUnsupportedDevice("tflite runtime not compiled in (build with -tags=tflite)")
}
