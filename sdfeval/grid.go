package sdfeval

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat/catalog"
)

// DefaultResolution is the number of nodes per axis of the default grid.
const DefaultResolution = 32

// MaxResolution bounds the nodes per axis so that Len fits comfortably in an int.
const MaxResolution = 1024

// NodeGrid is a regular lattice of Resolution nodes per axis spanning Bounds,
// both faces included. Nodes are ordered with X varying fastest, then Y, then Z.
type NodeGrid struct {
	Bounds     ms3.Box
	Resolution int
}

// DefaultGrid returns the grid of [DefaultResolution] nodes per axis over the catalog bounds.
func DefaultGrid() NodeGrid {
	return NodeGrid{Bounds: catalog.Bounds(), Resolution: DefaultResolution}
}

// Validate reports whether the grid can produce nodes.
func (g NodeGrid) Validate() error {
	if g.Resolution < 2 {
		return fmt.Errorf("grid resolution %d must be at least 2", g.Resolution)
	} else if g.Resolution > MaxResolution {
		return fmt.Errorf("grid resolution %d exceeds maximum %d", g.Resolution, MaxResolution)
	}
	sz := g.Bounds.Size()
	if !(sz.X > 0 && sz.Y > 0 && sz.Z > 0) {
		return errors.New("grid bounds must have positive size")
	}
	return nil
}

// Len returns the number of nodes.
func (g NodeGrid) Len() int {
	return g.Resolution * g.Resolution * g.Resolution
}

// Step returns the spacing between neighbouring nodes along each axis.
func (g NodeGrid) Step() ms3.Vec {
	return ms3.Scale(1/float32(g.Resolution-1), g.Bounds.Size())
}

// Index returns the position in node order of the node at integer coordinates i, j, k.
func (g NodeGrid) Index(i, j, k int) int {
	return i + g.Resolution*(j+g.Resolution*k)
}

// Points returns all nodes in node order.
func (g NodeGrid) Points() ([]ms3.Vec, error) {
	return g.AppendPoints(nil)
}

// AppendPoints appends all nodes in node order to dst.
func (g NodeGrid) AppendPoints(dst []ms3.Vec) ([]ms3.Vec, error) {
	if err := g.Validate(); err != nil {
		return dst, err
	}
	res := g.Resolution
	step := g.Step()
	origin := g.Bounds.Min
	dst = growVecs(dst, g.Len())
	for k := 0; k < res; k++ {
		z := origin.Z + float32(k)*step.Z
		for j := 0; j < res; j++ {
			y := origin.Y + float32(j)*step.Y
			for i := 0; i < res; i++ {
				dst = append(dst, ms3.Vec{X: origin.X + float32(i)*step.X, Y: y, Z: z})
			}
		}
	}
	return dst, nil
}

func growVecs(s []ms3.Vec, n int) []ms3.Vec {
	if cap(s)-len(s) >= n {
		return s
	}
	grown := make([]ms3.Vec, len(s), len(s)+n)
	copy(grown, s)
	return grown
}
