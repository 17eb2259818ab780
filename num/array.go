// Package num provides the batched numeric containers shared by the geometry
// and collision packages.
//
// An Array is a shaped, contiguous batch of float64 elements and comes in two
// container kinds: Float64 holds immediate values, Dual additionally carries a
// forward-mode derivative per element. Elements are read and written as gonum
// dual.Number values, so every algorithm in this module is written once and
// runs the identical floating-point sequence on both kinds; a Float64 array
// simply discards the derivative on store.
package num

import (
	"fmt"

	"gonum.org/v1/gonum/num/dual"
)

// Kind enumerates the supported numeric container kinds.
type Kind int

const (
	// Float64 is an immediate-value array.
	Float64 Kind = iota
	// Dual is a differentiable buffer carrying one forward-mode derivative
	// per element.
	Dual
)

func (k Kind) String() string {
	switch k {
	case Float64:
		return "float64"
	case Dual:
		return "dual"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k == Float64 || k == Dual
}

// Array is a shaped batch of numeric elements. The trailing dimensions carry
// point or feature axes; any leading dimensions are free-form batch axes.
type Array struct {
	shape  []int
	values []float64
	derivs []float64 // nil unless the array is Dual
}

// Numel returns the number of elements implied by a shape.
func Numel(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// New returns a Float64 array of the given shape backed by values. The slice
// is retained, not copied. New panics if the value count does not match the
// shape, following gonum's mat constructors.
func New(shape []int, values []float64) *Array {
	if len(values) != Numel(shape) {
		panic(fmt.Sprintf("num: %d values for shape %v", len(values), shape))
	}
	return &Array{shape: shapeCopy(shape), values: values}
}

// NewDual returns a Dual array of the given shape backed by values and their
// forward-mode derivatives. Both slices are retained. A nil derivs allocates
// zero derivatives. NewDual panics if a slice length does not match the shape.
func NewDual(shape []int, values, derivs []float64) *Array {
	if len(values) != Numel(shape) {
		panic(fmt.Sprintf("num: %d values for shape %v", len(values), shape))
	}
	if derivs == nil {
		derivs = make([]float64, len(values))
	} else if len(derivs) != len(values) {
		panic(fmt.Sprintf("num: %d derivatives for shape %v", len(derivs), shape))
	}
	return &Array{shape: shapeCopy(shape), values: values, derivs: derivs}
}

// Zeros returns a zero-filled array of the given kind and shape. Zeros panics
// on an out-of-range kind; public entry points validate kinds with SameKind
// before allocating.
func Zeros(kind Kind, shape ...int) *Array {
	if !kind.valid() {
		panic(newInvalidKindError(kind))
	}
	n := Numel(shape)
	a := &Array{shape: shapeCopy(shape), values: make([]float64, n)}
	if kind == Dual {
		a.derivs = make([]float64, n)
	}
	return a
}

// Full returns an array of the given kind and shape with every value set to v
// and, for Dual arrays, every derivative set to zero.
func Full(kind Kind, v float64, shape ...int) *Array {
	a := Zeros(kind, shape...)
	for i := range a.values {
		a.values[i] = v
	}
	return a
}

// Kind returns the array's container kind.
func (a *Array) Kind() Kind {
	if a.derivs != nil {
		return Dual
	}
	return Float64
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int {
	return shapeCopy(a.shape)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Dim returns the size of dimension i. Negative indices count from the end,
// so Dim(-1) is the trailing dimension.
func (a *Array) Dim(i int) int {
	if i < 0 {
		i += len(a.shape)
	}
	return a.shape[i]
}

// Len returns the total number of elements.
func (a *Array) Len() int {
	return len(a.values)
}

// Values returns the backing value slice. It is a live view, not a copy.
func (a *Array) Values() []float64 {
	return a.values
}

// Derivs returns the backing derivative slice, or nil for a Float64 array.
func (a *Array) Derivs() []float64 {
	return a.derivs
}

// At returns element i as a dual number. Float64 arrays report a zero
// derivative.
func (a *Array) At(i int) dual.Number {
	n := dual.Number{Real: a.values[i]}
	if a.derivs != nil {
		n.Emag = a.derivs[i]
	}
	return n
}

// Set stores element i. Float64 arrays discard the derivative.
func (a *Array) Set(i int, v dual.Number) {
	a.values[i] = v.Real
	if a.derivs != nil {
		a.derivs[i] = v.Emag
	}
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	out := &Array{shape: shapeCopy(a.shape), values: append([]float64(nil), a.values...)}
	if a.derivs != nil {
		out.derivs = append([]float64(nil), a.derivs...)
	}
	return out
}

// Reshape returns a view of the same elements under a new shape. The element
// count must be unchanged; Reshape panics otherwise.
func (a *Array) Reshape(shape ...int) *Array {
	if Numel(shape) != len(a.values) {
		panic(fmt.Sprintf("num: cannot reshape %v to %v", a.shape, shape))
	}
	return &Array{shape: shapeCopy(shape), values: a.values, derivs: a.derivs}
}

// SameShape reports whether b has exactly the same shape as a.
func (a *Array) SameShape(b *Array) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i, d := range a.shape {
		if b.shape[i] != d {
			return false
		}
	}
	return true
}

// SameKind returns the container kind shared by all given arrays. Mixing
// kinds across co-operands of one call, or an out-of-range kind, yields a
// *ContainerKindError; outputs always take the shared kind, so a Dual input
// can never be silently flattened to values.
func SameKind(arrays ...*Array) (Kind, error) {
	if len(arrays) == 0 {
		return Float64, nil
	}
	kind := arrays[0].Kind()
	for _, a := range arrays[1:] {
		if k := a.Kind(); k != kind {
			return 0, newMixedKindError(kind, k)
		}
	}
	return kind, nil
}

func shapeCopy(shape []int) []int {
	return append([]int(nil), shape...)
}
