package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/motion"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is the paintable state of one element, read from the animated
// values of its nodes. Offsets are added to the element's laid-out box;
// the pivot is relative to the box, in pixels.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64 // radians
	SkewX, SkewY   float64 // radians
	PivotX, PivotY float64
	Alpha          float64
}

// IdentityTransform leaves an element where layout put it.
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1, Alpha: 1}

// Apply folds the conventional property names of n into t:
//
//	x, y          pixel offsets
//	offset        vector pixel offset
//	scale         uniform scale, scaleX and scaleY per axis
//	rotate        degrees, or a vector of (rotateY, rotateX) tilt degrees
//	opacity       multiplied into Alpha
//
// Tilt is flattened to a foreshortening scale since painting is 2D.
// Unknown names are ignored.
func (t *Transform) Apply(n *motion.AnimationNode) {
	n.Each(func(name string, v motion.Value) {
		switch name {
		case "x":
			t.X += v.Float()
		case "y":
			t.Y += v.Float()
		case "offset":
			t.X += v.At(0)
			t.Y += v.At(1)
		case "scale":
			t.ScaleX *= v.Float()
			t.ScaleY *= v.Float()
		case "scaleX":
			t.ScaleX *= v.Float()
		case "scaleY":
			t.ScaleY *= v.Float()
		case "rotate":
			if v.IsScalar() {
				t.Rotation += v.Float() * math.Pi / 180
				return
			}
			t.ScaleX *= math.Cos(v.At(0) * math.Pi / 180)
			t.ScaleY *= math.Cos(v.At(1) * math.Pi / 180)
		case "skewX":
			t.SkewX += v.Float() * math.Pi / 180
		case "skewY":
			t.SkewY += v.Float() * math.Pi / 180
		case "opacity":
			t.Alpha *= v.Float()
		}
	})
}

// TransformOf combines the values of nodes on top of IdentityTransform with
// the pivot at the center of a box of size w by h.
func TransformOf(w, h float64, nodes ...*motion.AnimationNode) Transform {
	t := IdentityTransform
	t.PivotX, t.PivotY = w/2, h/2
	for _, n := range nodes {
		if n != nil {
			t.Apply(n)
		}
	}
	return t
}

// local computes the affine matrix of t for a box whose top-left corner is
// at (originX, originY). Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-Pivot) -> Scale -> Skew -> Rotate -> Translate(origin + Pivot + offset)
func (t Transform) local(originX, originY float64) [6]float64 {
	sx := t.ScaleX
	sy := t.ScaleY

	sin, cos := math.Sincos(t.Rotation)

	var tanSkewX, tanSkewY float64
	if t.SkewX != 0 {
		tanSkewX = math.Tan(t.SkewX)
	}
	if t.SkewY != 0 {
		tanSkewY = math.Tan(t.SkewY)
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	px := t.PivotX
	py := t.PivotY
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + originX + px + t.X, rty + originY + py + t.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
