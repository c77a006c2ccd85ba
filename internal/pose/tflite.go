//go:build tflite

package pose

import (
	"sessiond/internal/capture"
	"sessiond/internal/engine"
	"sessiond/pkg/types"

	"github.com/tphakala/go-tflite"
)

// tfliteDetector runs a single-pose model (MoveNet/BlazePose style output:
// one [y, x, score] triple per landmark) through the TensorFlow Lite C
// runtime. Enabled with `-tags=tflite`.
type tfliteDetector struct {
	model  *tflite.Model
	interp *tflite.Interpreter
	opts   *tflite.InterpreterOptions
	names  []string
}

func newTFLiteDetector(cfg DetectorConfig) (Detector, error) {
	model := tflite.NewModel(cfg.Model)
	if model == nil {
		return nil, engine.ErrAssetLoad("cannot parse TensorFlow Lite model")
	}
	options := tflite.NewInterpreterOptions()
	options.SetNumThread(2)
	interp := tflite.NewInterpreter(model, options)
	if interp == nil {
		options.Delete()
		model.Delete()
		return nil, engine.ErrAssetLoad("cannot create TensorFlow Lite interpreter")
	}
	if status := interp.AllocateTensors(); status != tflite.OK {
		interp.Delete()
		options.Delete()
		model.Delete()
		return nil, engine.ErrAssetLoad("tensor allocation failed")
	}
	return &tfliteDetector{model: model, interp: interp, opts: options, names: cfg.Names}, nil
}

func (d *tfliteDetector) Detect(f capture.Frame) ([]types.Keypoint, error) {
	input := d.interp.GetInputTensor(0)
	in := input.Float32s()
	// RGB bytes normalized to [0,1]; the capture pipeline is configured to
	// the model's input resolution.
	n := len(in)
	if len(f.Data) < n {
		n = len(f.Data)
	}
	for i := 0; i < n; i++ {
		in[i] = float32(f.Data[i]) / 255.0
	}
	if status := d.interp.Invoke(); status != tflite.OK {
		return nil, engine.ErrAssetLoad("tflite invoke failed")
	}
	out := d.interp.GetOutputTensor(0).Float32s()
	kps := make([]types.Keypoint, 0, len(d.names))
	for i, name := range d.names {
		if (i+1)*3 > len(out) {
			break
		}
		kps = append(kps, types.Keypoint{
			Name:  name,
			Y:     float64(out[i*3]),
			X:     float64(out[i*3+1]),
			Score: float64(out[i*3+2]),
		})
	}
	return kps, nil
}

func (d *tfliteDetector) Close() error {
	if d.interp != nil {
		d.interp.Delete()
		d.interp = nil
	}
	if d.opts != nil {
		d.opts.Delete()
		d.opts = nil
	}
	if d.model != nil {
		d.model.Delete()
		d.model = nil
	}
	return nil
}
