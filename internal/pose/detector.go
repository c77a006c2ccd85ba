package pose

import (
	"math"

	"sessiond/internal/capture"
	"sessiond/pkg/types"
)

// Detector turns one captured frame into a set of keypoints with confidence
// scores. Implementations: the TensorFlow-Lite backend behind the 'tflite'
// build tag and the synthetic detector used in demo mode and tests.
type Detector interface {
	Detect(f capture.Frame) ([]types.Keypoint, error)
	Close() error
}

// DetectorConfig is passed to a DetectorFactory once the tracker has
// fetched/read the model bytes.
type DetectorConfig struct {
	Engine string
	Model  []byte
	Names  []string
}

// DetectorFactory builds a detector. The tracker injects the default
// (tflite or synthetic); tests inject fakes.
type DetectorFactory func(cfg DetectorConfig) (Detector, error)

// syntheticDetector produces a deterministic walking figure so the full
// pipeline can run without a model or cgo runtime.
type syntheticDetector struct {
	names []string
	tick  float64
}

func newSyntheticDetector(cfg DetectorConfig) (Detector, error) {
	return &syntheticDetector{names: cfg.Names}, nil
}

func (d *syntheticDetector) Detect(f capture.Frame) ([]types.Keypoint, error) {
	d.tick += 0.1
	kps := make([]types.Keypoint, 0, len(d.names))
	for i, name := range d.names {
		phase := d.tick + float64(i)*0.35
		kps = append(kps, types.Keypoint{
			Name:  name,
			X:     0.5 + 0.2*math.Sin(phase),
			Y:     0.1 + 0.8*float64(i)/float64(len(d.names)),
			Score: 0.6 + 0.4*math.Abs(math.Cos(phase)),
		})
	}
	return kps, nil
}

func (d *syntheticDetector) Close() error { return nil }
