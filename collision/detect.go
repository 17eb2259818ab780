package collision

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// CollisionType classifies which ego edge a collision happened on. The two
// lateral edges share the Side classification.
type CollisionType int

const (
	// Front means the longest intersection is with ego's front edge.
	Front CollisionType = iota
	// Rear means the longest intersection is with ego's rear edge.
	Rear
	// Side means the longest intersection is with either lateral edge.
	Side
)

func (t CollisionType) String() string {
	switch t {
	case Front:
		return "front"
	case Rear:
		return "rear"
	case Side:
		return "side"
	default:
		return "unknown"
	}
}

// Agent is an oriented rectangular footprint in world coordinates. Extent.X
// is the length along the heading, Extent.Y the width.
type Agent struct {
	Pos    r2.Point
	Yaw    float64
	Extent r2.Point
}

// Rectangle is an oriented rectangle built by a RectangleProvider.
type Rectangle interface {
	// Intersects reports whether the two rectangles overlap.
	Intersects(other Rectangle) bool
	// EdgeIntersectionLengths returns the length of other's intersection
	// with each of the receiver's edges, ordered front, rear, left, right.
	EdgeIntersectionLengths(other Rectangle) [4]float64
}

// RectangleProvider is the polygon geometry service consumed by Detect. The
// library treats it as opaque; any exact polygon implementation satisfying
// the edge ordering contract can back it.
type RectangleProvider interface {
	Rectangle(pos r2.Point, yaw float64, extent r2.Point) Rectangle
}

// Report identifies the first agent found in collision with ego.
type Report struct {
	Type  CollisionType
	Index int
}

// Detect scans others in slice order and returns a report for the first
// agent whose footprint intersects ego's, or nil if none intersects.
//
// The first-match short-circuit is part of the contract: the result depends
// on the iteration order of others, and callers that need a specific agent
// ahead of deeper overlaps must order the slice accordingly. The collision
// side is the ego edge with the longest intersection, the two lateral edges
// both classifying as Side; equal lengths resolve to the earlier edge in
// front, rear, left, right order.
func Detect(ego Agent, others []Agent, rects RectangleProvider) (*Report, error) {
	if rects == nil {
		return nil, errors.New("no rectangle provider")
	}
	egoRect := rects.Rectangle(ego.Pos, ego.Yaw, ego.Extent)
	for i, other := range others {
		otherRect := rects.Rectangle(other.Pos, other.Yaw, other.Extent)
		if !egoRect.Intersects(otherRect) {
			continue
		}
		lengths := egoRect.EdgeIntersectionLengths(otherRect)
		side := 0
		for e := 1; e < len(lengths); e++ {
			if lengths[e] > lengths[side] {
				side = e
			}
		}
		if side > int(Side) {
			side = int(Side)
		}
		return &Report{Type: CollisionType(side), Index: i}, nil
	}
	return nil, nil
}
