package num

import "fmt"

// ShapeError reports a rank, dimension, or size violation between the
// operands of a batched geometric operation. It is returned eagerly, before
// any computation, and its message names both offending shapes where two
// operands are involved.
type ShapeError struct {
	msg string
}

func (e *ShapeError) Error() string {
	return e.msg
}

// NewShapeErrorf builds a *ShapeError from a format string. Callers are
// expected to include every offending shape in the message.
func NewShapeErrorf(format string, args ...interface{}) error {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}

// ContainerKindError reports an unsupported numeric container kind, or two
// co-operands of one call carrying different kinds. Kinds are never silently
// mixed or converted; the caller picks one kind per call.
type ContainerKindError struct {
	msg string
}

func (e *ContainerKindError) Error() string {
	return e.msg
}

func newInvalidKindError(k Kind) error {
	return &ContainerKindError{msg: fmt.Sprintf("unsupported container kind %v", k)}
}

func newMixedKindError(want, got Kind) error {
	return &ContainerKindError{msg: fmt.Sprintf("mixed container kinds: %v and %v", want, got)}
}
