package physics

import "errors"

var (
	ErrUnknownModel = errors.New("physics: unknown model")
	ErrUnknownParam = errors.New("physics: unknown parameter")
	ErrUnknownPitch = errors.New("physics: unknown pitch type")

	// ErrStalled is returned by Cyclist when the speed reaches zero; the
	// power term P/(m v) has no value there.
	ErrStalled = errors.New("physics: cyclist stalled")
)
