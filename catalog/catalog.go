// Package catalog holds the fixed collection of named conservative distance functions
// and the process-wide registry built from it.
//
// Every shape fits inside the cube [-1,1]^3. Shapes are grouped by the feature of the
// distance algebra they exercise: primitives, constructive combinations, domain
// operators, animated shapes reading [sdfcat.Context.Time], procedural shapes reading
// [sdfcat.Context.Seed] and fractal distance estimators.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
	"github.com/soypat/sdfcat/registry"
)

// Shape enumerates the catalog. The enumeration order is the listing order of the registry.
type Shape uint8

const (
	// Primitives.
	Sphere Shape = iota
	Cube
	RoundedCube
	Torus
	Cylinder
	Capsule
	Cone
	HexPrism
	Octahedron
	Ellipsoid
	BoxFrame
	Link
	// Constructive combinations.
	CubeMinusSphere
	SphereCubeIntersection
	Cross
	CSGDemo
	SmoothBlob
	CubeSphereXor
	CutShell
	Snowman
	// Domain operators.
	TwistedBox
	BentBar
	RepeatedSpheres
	Pillars
	ElongatedTorus
	RotatedCube
	MirroredSpheres
	Chain
	Gear
	Table
	// Animated.
	PulsingSphere
	Metaballs
	Fish
	Wave
	SpinningTorus
	OrbitingMoons
	// Procedural.
	Asteroid
	RandomSpheres
	Crystal
	Pebbles
	Gyroid
	// Fractals.
	Mandelbulb
	MengerSponge
	SierpinskiTetrahedron

	numShapes
)

// fieldRadius is the largest distance from a coordinate axis to a point of [-1,1]^3.
// Stretching deformations compute their Lipschitz factor over this radius.
const fieldRadius = math.Sqrt2

type shapeDef struct {
	name string
	// lipschitz is the factor the shape divides its raw distance by. Zero means 1.
	lipschitz   float32
	approximate bool
	build       func(bld *sdfcat.Builder) sdfcat.Func
}

var shapeDefs = [numShapes]shapeDef{
	Sphere:      {name: "Sphere", build: sphere},
	Cube:        {name: "Cube", build: cube},
	RoundedCube: {name: "RoundedCube", build: roundedCube},
	Torus:       {name: "Torus", build: torus},
	Cylinder:    {name: "Cylinder", build: cylinder},
	Capsule:     {name: "Capsule", build: capsule},
	Cone:        {name: "Cone", build: cone},
	HexPrism:    {name: "HexPrism", build: hexPrism},
	Octahedron:  {name: "Octahedron", build: octahedron},
	Ellipsoid:   {name: "Ellipsoid", build: ellipsoid},
	BoxFrame:    {name: "BoxFrame", build: boxFrame},
	Link:        {name: "Link", build: link},

	CubeMinusSphere:        {name: "CubeMinusSphere", build: cubeMinusSphere},
	SphereCubeIntersection: {name: "SphereCubeIntersection", build: sphereCubeIntersection},
	Cross:                  {name: "Cross", build: cross},
	CSGDemo:                {name: "CSGDemo", build: csgDemo},
	SmoothBlob:             {name: "SmoothBlob", build: smoothBlob},
	CubeSphereXor:          {name: "CubeSphereXor", build: cubeSphereXor},
	CutShell:               {name: "CutShell", build: cutShell},
	Snowman:                {name: "Snowman", build: snowman},

	TwistedBox:      {name: "TwistedBox", lipschitz: twistedBoxLipschitz, build: twistedBox},
	BentBar:         {name: "BentBar", lipschitz: bentBarLipschitz, build: bentBar},
	RepeatedSpheres: {name: "RepeatedSpheres", build: repeatedSpheres},
	Pillars:         {name: "Pillars", build: pillars},
	ElongatedTorus:  {name: "ElongatedTorus", build: elongatedTorus},
	RotatedCube:     {name: "RotatedCube", build: rotatedCube},
	MirroredSpheres: {name: "MirroredSpheres", build: mirroredSpheres},
	Chain:           {name: "Chain", build: chain},
	Gear:            {name: "Gear", build: gear},
	Table:           {name: "Table", build: table},

	PulsingSphere: {name: "PulsingSphere", build: pulsingSphere},
	Metaballs:     {name: "Metaballs", build: metaballs},
	Fish:          {name: "Fish", lipschitz: fishLipschitz, build: fish},
	Wave:          {name: "Wave", lipschitz: waveLipschitz, build: wave},
	SpinningTorus: {name: "SpinningTorus", build: spinningTorus},
	OrbitingMoons: {name: "OrbitingMoons", build: orbitingMoons},

	Asteroid:      {name: "Asteroid", build: asteroid},
	RandomSpheres: {name: "RandomSpheres", build: randomSpheres},
	Crystal:       {name: "Crystal", build: crystal},
	Pebbles:       {name: "Pebbles", build: pebbles},
	Gyroid:        {name: "Gyroid", lipschitz: gyroidLipschitz, build: gyroid},

	Mandelbulb:            {name: "Mandelbulb", approximate: true, build: mandelbulb},
	MengerSponge:          {name: "MengerSponge", approximate: true, build: mengerSponge},
	SierpinskiTetrahedron: {name: "SierpinskiTetrahedron", approximate: true, build: sierpinski},
}

// String returns the registered name of the shape.
func (s Shape) String() string {
	if s >= numShapes {
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
	return shapeDefs[s].name
}

// Shapes returns every shape in enumeration order.
func Shapes() []Shape {
	shapes := make([]Shape, numShapes)
	for i := range shapes {
		shapes[i] = Shape(i)
	}
	return shapes
}

// Parse returns the shape registered under name.
func Parse(name string) (Shape, bool) {
	for i := range shapeDefs {
		if shapeDefs[i].name == name {
			return Shape(i), true
		}
	}
	return numShapes, false
}

// Lipschitz returns the factor the shape divides its raw distance by. 1 for shapes
// that are conservative without correction.
func (s Shape) Lipschitz() float32 {
	if s >= numShapes || shapeDefs[s].lipschitz == 0 {
		return 1
	}
	return shapeDefs[s].lipschitz
}

// Approximate reports whether the shape is a distance estimator without a proven bound.
func (s Shape) Approximate() bool {
	return s < numShapes && shapeDefs[s].approximate
}

// Bounds returns the box every catalog shape fits in.
func Bounds() ms3.Box {
	return ms3.Box{Min: ms3.Vec{X: -1, Y: -1, Z: -1}, Max: ms3.Vec{X: 1, Y: 1, Z: 1}}
}

// Build creates the distance function of a single shape. Invalid construction
// parameters are reported through bld according to its flags.
func (s Shape) Build(bld *sdfcat.Builder) (sdfcat.Func, error) {
	if s >= numShapes {
		return nil, errors.New("catalog: invalid shape " + s.String())
	}
	def := &shapeDefs[s]
	if def.build == nil {
		return nil, fmt.Errorf("catalog: shape %s has no builder", s)
	}
	return def.build(bld), nil
}

// NewRegistry builds a registry holding every catalog shape in enumeration order.
// Construction errors of all shapes are collected and returned together.
func NewRegistry() (*registry.Registry, error) {
	var bld sdfcat.Builder
	bld.SetFlags(sdfcat.FlagNoDimensionPanic)
	entries := make([]registry.Entry, 0, numShapes)
	for _, s := range Shapes() {
		fn, err := s.Build(&bld)
		if err != nil {
			return nil, err
		}
		entries = append(entries, registry.Entry{
			Name:        s.String(),
			Func:        fn,
			Lipschitz:   s.Lipschitz(),
			Approximate: s.Approximate(),
		})
	}
	if err := bld.Err(); err != nil {
		return nil, fmt.Errorf("catalog: building shapes: %w", err)
	}
	return registry.New(entries...)
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Default returns the process-wide registry. It is built on first use and shared
// read-only afterwards.
func Default() (*registry.Registry, error) {
	return defaultRegistry()
}

// MustDefault is like [Default] but panics if the registry could not be built.
func MustDefault() *registry.Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}
