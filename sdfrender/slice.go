// Package sdfrender draws planar cross sections of 3D distance fields into images.
package sdfrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat/sdfeval"
	"golang.org/x/image/draw"
)

// Axis selects the normal of a slicing plane.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// ParseAxis parses "x", "y" or "z", case insensitive.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid slice axis %q", s)
}

// planeAxes returns the components of the 3D point mapped to the image
// horizontal and vertical directions and the component held fixed.
func (a Axis) planeAxes() (u, v, n int) {
	switch a {
	case AxisX:
		return 1, 2, 0
	case AxisY:
		return 0, 2, 1
	default:
		return 0, 1, 2
	}
}

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// SliceRenderer converts planar sections of 3D SDFs to images. The plane is
// perpendicular to Axis and passes through Offset along it. The image spans the
// SDF bounds projected onto the plane, with the vertical image axis pointing
// towards decreasing coordinates so that up in the plane is up in the image.
type SliceRenderer struct {
	axis   Axis
	offset float32
	conv   func(float32) color.Color
	pos    []ms3.Vec
	dist   []float32
}

// NewSliceRenderer instances a new [SliceRenderer]. A nil float->color conversion
// function results in [BlackAndWhite].
func NewSliceRenderer(axis Axis, offset float32, conversion func(float32) color.Color) (*SliceRenderer, error) {
	if axis > AxisZ {
		return nil, fmt.Errorf("invalid slice axis %v", axis)
	} else if math32.IsNaN(offset) || math32.IsInf(offset, 0) {
		return nil, errors.New("slice offset must be finite")
	}
	if conversion == nil {
		conversion = BlackAndWhite
	}
	return &SliceRenderer{axis: axis, offset: offset, conv: conversion}, nil
}

// Render evaluates sdf over img, one image row per evaluation batch. It uses userData
// as an argument to all [sdfeval.SDF3.Evaluate] calls.
func (sr *SliceRenderer) Render(sdf sdfeval.SDF3, img setImage, userData any) error {
	imgBB := img.Bounds()
	dxi := imgBB.Dx()
	dyi := imgBB.Dy()
	if dxi <= 0 || dyi <= 0 {
		return errors.New("empty image")
	}
	if cap(sr.dist) < dxi {
		sr.pos = make([]ms3.Vec, dxi)
		sr.dist = make([]float32, dxi)
	}
	pos := sr.pos[:dxi]
	dist := sr.dist[:dxi]

	bb := sdf.Bounds()
	iu, iv, in := sr.axis.planeAxes()
	umin, vmax := comp(bb.Min, iu), comp(bb.Max, iv)
	du := (comp(bb.Max, iu) - umin) / float32(dxi)
	dv := (vmax - comp(bb.Min, iv)) / float32(dyi)
	var p ms3.Vec
	setComp(&p, in, sr.offset)
	for j := 0; j < dyi; j++ {
		// Sample at pixel centers.
		setComp(&p, iv, vmax-(float32(j)+0.5)*dv)
		for i := range pos {
			setComp(&p, iu, umin+(float32(i)+0.5)*du)
			pos[i] = p
		}
		err := sdf.Evaluate(pos, dist, userData)
		if err != nil {
			return fmt.Errorf("rendering row %d: %w", j, err)
		}
		for i, d := range dist {
			img.Set(i+imgBB.Min.X, j+imgBB.Min.Y, sr.conv(d))
		}
	}
	return nil
}

// ImageSize returns the image dimensions that keep the aspect ratio of the
// SDF bounds projected onto the slicing plane with the longest side equal to pixels.
func (sr *SliceRenderer) ImageSize(bounds ms3.Box, pixels int) (width, height int) {
	iu, iv, _ := sr.axis.planeAxes()
	sz := bounds.Size()
	w, h := comp(sz, iu), comp(sz, iv)
	if w >= h {
		return pixels, max(1, int(math32.Round(float32(pixels)*h/w)))
	}
	return max(1, int(math32.Round(float32(pixels)*w/h))), pixels
}

// Upscale enlarges img by an integer factor using nearest neighbour sampling,
// keeping the hard edges of the rendered field.
func Upscale(img image.Image, factor int) (*image.RGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("invalid upscale factor %d", factor)
	}
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*factor, src.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst, nil
}

func comp(v ms3.Vec, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setComp(v *ms3.Vec, i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
}
