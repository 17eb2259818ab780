// Package collision provides batched collision distance heuristics between
// agent footprints, a drivable-area distance field, and a first-collision
// scan over tracked agents.
//
// All pairwise metrics are signed clearances: positive means separated by
// that margin, zero or negative means contact or overlap. No clamping is
// applied. Inputs are num.Array containers and outputs preserve their kind.
package collision

import (
	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// Corner sign order of the inflated footprint used by VehicleVehicle.
var (
	cornerSignX = [4]float64{0.5, 0.5, -0.5, -0.5}
	cornerSignY = [4]float64{0.5, -0.5, 0.5, -0.5}
)

const (
	defaultAlpha   = 5.0
	defaultOffsetX = 1.0
	defaultOffsetY = 0.3
)

type vehicleVehicleOptions struct {
	alpha   float64
	offsetX float64
	offsetY float64
}

// VehicleVehicleOption configures VehicleVehicle.
type VehicleVehicleOption func(*vehicleVehicleOptions)

// WithOffsets overrides the longitudinal and lateral inflation margins added
// to the first vehicle's extent (defaults 1.0 and 0.3).
func WithOffsets(x, y float64) VehicleVehicleOption {
	return func(o *vehicleVehicleOptions) {
		o.offsetX = x
		o.offsetY = y
	}
}

// WithAlpha sets the alpha parameter (default 5). It is accepted but not
// used by the metric; the parameter is reserved.
func WithAlpha(a float64) VehicleVehicleOption {
	return func(o *vehicleVehicleOptions) {
		o.alpha = a
	}
}

// PedestrianPedestrian returns the center distance between two pedestrians
// minus the mean of their leading size entries (a diameter-like scalar):
// p1, p2 [...,>=2], s1, s2 [...,>=1] -> distance [...]. Two coincident
// pedestrians of size s yield -s.
func PedestrianPedestrian(p1, p2, s1, s2 *num.Array) (*num.Array, error) {
	kind, batchShape, err := pairShapes(p1, p2, s1, s2, 2, 2, 1, 1)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	p1w, p2w := p1.Dim(-1), p2.Dim(-1)
	s1w, s2w := s1.Dim(-1), s2.Dim(-1)
	out := num.Zeros(kind, batchShape...)
	for b := 0; b < batch; b++ {
		dx := dual.Sub(p1.At(b*p1w), p2.At(b*p2w))
		dy := dual.Sub(p1.At(b*p1w+1), p2.At(b*p2w+1))
		halfSizes := dual.Scale(0.5, dual.Add(s1.At(b*s1w), s2.At(b*s2w)))
		out.Set(b, dual.Sub(num.Hypot(dx, dy), halfSizes))
	}
	return out, nil
}

// VehicleVehicle returns a separating-axis style approximate signed distance
// between two vehicles: p1, p2 [...,>=3] (x, y, heading), s1, s2 [...,>=2]
// (length, width) -> distance [...].
//
// The four corners of vehicle 1's footprint, inflated by the offset margins,
// are rotated into the world frame and then into vehicle 2's body frame;
// each corner's penetration against vehicle 2's half extents is the larger
// of its two axis gaps, and the result is the smallest corner value.
// Negative means the deepest-overlapping corner is inside vehicle 2. The
// approximation is only meaningful when the bodies are not rotated far
// apart; it is not an exact polygon distance.
func VehicleVehicle(p1, p2, s1, s2 *num.Array, opts ...VehicleVehicleOption) (*num.Array, error) {
	options := vehicleVehicleOptions{alpha: defaultAlpha, offsetX: defaultOffsetX, offsetY: defaultOffsetY}
	for _, opt := range opts {
		opt(&options)
	}
	kind, batchShape, err := pairShapes(p1, p2, s1, s2, 3, 3, 2, 2)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	p1w, p2w := p1.Dim(-1), p2.Dim(-1)
	s1w, s2w := s1.Dim(-1), s2.Dim(-1)
	out := num.Zeros(kind, batchShape...)
	for b := 0; b < batch; b++ {
		inflX := num.AddConst(options.offsetX, s1.At(b*s1w))
		inflY := num.AddConst(options.offsetY, s1.At(b*s1w+1))
		sin1, cos1 := dual.Sin(p1.At(b*p1w+2)), dual.Cos(p1.At(b*p1w+2))
		sin2, cos2 := dual.Sin(p2.At(b*p2w+2)), dual.Cos(p2.At(b*p2w+2))
		dxx := dual.Sub(p1.At(b*p1w), p2.At(b*p2w))
		dxy := dual.Sub(p1.At(b*p1w+1), p2.At(b*p2w+1))
		halfLen2 := dual.Scale(0.5, s2.At(b*s2w))
		halfWid2 := dual.Scale(0.5, s2.At(b*s2w+1))

		var minDis dual.Number
		for k := 0; k < 4; k++ {
			cx := dual.Scale(cornerSignX[k], inflX)
			cy := dual.Scale(cornerSignY[k], inflY)
			// corner into vehicle-1 world frame, then offset by the
			// center delta
			wx := dual.Add(dual.Sub(dual.Mul(cx, cos1), dual.Mul(cy, sin1)), dxx)
			wy := dual.Add(dual.Add(dual.Mul(cy, cos1), dual.Mul(cx, sin1)), dxy)
			// rotate by -theta2 into vehicle 2's body frame
			bx := dual.Add(dual.Mul(wx, cos2), dual.Mul(wy, sin2))
			by := dual.Sub(dual.Mul(wy, cos2), dual.Mul(wx, sin2))
			pen := num.Max(
				dual.Sub(dual.Abs(bx), halfLen2),
				dual.Sub(dual.Abs(by), halfWid2),
			)
			if k == 0 || pen.Real < minDis.Real {
				minDis = pen
			}
		}
		out.Set(b, minDis)
	}
	return out, nil
}

// VehiclePedestrian returns the axis-aligned gap between a vehicle footprint
// and a pedestrian point in the vehicle's body frame: p1 [...,>=3] vehicle
// pose, p2 [...,>=2] pedestrian position, s1 [...,>=2] vehicle extent,
// s2 [...,>=1] pedestrian size -> distance [...]. The larger of the two
// axis gaps is returned.
//
// The pedestrian's leading size entry is subtracted on both axes, lateral
// included, mirroring the reference behavior exactly even though the second
// axis would be expected to use the next entry.
func VehiclePedestrian(p1, p2, s1, s2 *num.Array) (*num.Array, error) {
	kind, batchShape, err := pairShapes(p1, p2, s1, s2, 3, 2, 2, 1)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	p1w, p2w := p1.Dim(-1), p2.Dim(-1)
	s1w, s2w := s1.Dim(-1), s2.Dim(-1)
	out := num.Zeros(kind, batchShape...)
	for b := 0; b < batch; b++ {
		sin1, cos1 := dual.Sin(p1.At(b*p1w+2)), dual.Cos(p1.At(b*p1w+2))
		dx := dual.Sub(p2.At(b*p2w), p1.At(b*p1w))
		dy := dual.Sub(p2.At(b*p2w+1), p1.At(b*p1w+1))
		// rotate the relative position by -theta1
		bx := dual.Add(dual.Mul(dx, cos1), dual.Mul(dy, sin1))
		by := dual.Sub(dual.Mul(dy, cos1), dual.Mul(dx, sin1))
		halfPed := dual.Scale(0.5, s2.At(b*s2w))
		gapX := dual.Sub(dual.Sub(dual.Abs(bx), dual.Scale(0.5, s1.At(b*s1w))), halfPed)
		gapY := dual.Sub(dual.Sub(dual.Abs(by), dual.Scale(0.5, s1.At(b*s1w+1))), halfPed)
		out.Set(b, num.Max(gapX, gapY))
	}
	return out, nil
}

// PedestrianVehicle is VehiclePedestrian with its argument pairs swapped; it
// is an adapter, not a distinct metric.
func PedestrianVehicle(p1, p2, s1, s2 *num.Array) (*num.Array, error) {
	return VehiclePedestrian(p2, p1, s2, s1)
}

// pairShapes validates a pose/pose/size/size quadruple: shared container
// kind, minimum trailing widths, and elementwise-matching batch dimensions.
func pairShapes(p1, p2, s1, s2 *num.Array, p1Min, p2Min, s1Min, s2Min int) (num.Kind, []int, error) {
	kind, err := num.SameKind(p1, p2, s1, s2)
	if err != nil {
		return 0, nil, err
	}
	arrays := []*num.Array{p1, p2, s1, s2}
	names := []string{"p1", "p2", "s1", "s2"}
	mins := []int{p1Min, p2Min, s1Min, s2Min}
	for i, a := range arrays {
		shape := a.Shape()
		if len(shape) < 1 || shape[len(shape)-1] < mins[i] {
			return 0, nil, num.NewShapeErrorf("%s must end in an axis of size >= %d, got %v", names[i], mins[i], shape)
		}
	}
	batch := p1.Shape()
	batch = batch[:len(batch)-1]
	for i, a := range arrays[1:] {
		shape := a.Shape()
		if !sameDims(batch, shape[:len(shape)-1]) {
			return 0, nil, num.NewShapeErrorf("batch dimensions must match: p1 %v, %s %v", p1.Shape(), names[i+1], shape)
		}
	}
	return kind, batch, nil
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, d := range a {
		if b[i] != d {
			return false
		}
	}
	return true
}
