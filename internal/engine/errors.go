package engine

// Start failure taxonomy. The HTTP layer maps these to status codes and the
// coordinator surfaces them to the shell as user-facing status strings.

// permissionDeniedError signals the camera (or XR session) was refused.
type permissionDeniedError struct{ msg string }

func (e permissionDeniedError) Error() string { return e.msg }

// ErrPermissionDenied constructs a permission-denied start error.
func ErrPermissionDenied(msg string) error { return permissionDeniedError{msg: msg} }

// IsPermissionDenied reports whether err indicates refused camera/XR access.
func IsPermissionDenied(err error) bool {
	_, ok := err.(permissionDeniedError)
	return ok
}

// unsupportedDeviceError signals a required capability is absent (no tflite
// runtime compiled in, no XR runtime, no camera device).
type unsupportedDeviceError struct{ msg string }

func (e unsupportedDeviceError) Error() string { return e.msg }

func ErrUnsupportedDevice(msg string) error { return unsupportedDeviceError{msg: msg} }

// IsUnsupportedDevice reports whether err indicates a missing capability.
func IsUnsupportedDevice(err error) bool {
	_, ok := err.(unsupportedDeviceError)
	return ok
}

// networkUnavailableError signals a model/asset fetch failed.
type networkUnavailableError struct{ msg string }

func (e networkUnavailableError) Error() string { return e.msg }

func ErrNetworkUnavailable(msg string) error { return networkUnavailableError{msg: msg} }

// IsNetworkUnavailable reports whether err indicates a failed remote fetch.
func IsNetworkUnavailable(err error) bool {
	_, ok := err.(networkUnavailableError)
	return ok
}

// assetLoadError signals a local model/asset could not be loaded.
type assetLoadError struct{ msg string }

func (e assetLoadError) Error() string { return e.msg }

func ErrAssetLoad(msg string) error { return assetLoadError{msg: msg} }

// IsAssetLoad reports whether err indicates a model/asset load failure.
func IsAssetLoad(err error) bool {
	_, ok := err.(assetLoadError)
	return ok
}

// notFoundError signals an unknown mode/engine selection.
type notFoundError struct{ sel Selection }

func (e notFoundError) Error() string {
	return "engine not found: " + string(e.sel.Mode) + "/" + e.sel.Engine
}

func ErrNotFound(sel Selection) error { return notFoundError{sel: sel} }

// IsNotFound reports whether err indicates an unknown engine selection.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}
