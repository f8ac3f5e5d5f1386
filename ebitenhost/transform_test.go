package ebitenhost

import (
	"math"
	"testing"

	"github.com/phanxgames/motion"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestLocalIdentity(t *testing.T) {
	got := IdentityTransform.local(0, 0)
	assertMatrix(t, "identity", got, identityTransform)
}

func TestLocalOriginAndOffset(t *testing.T) {
	tr := IdentityTransform
	tr.X, tr.Y = 5, -5
	got := tr.local(100, 200)
	assertMatrix(t, "translate", got, [6]float64{1, 0, 0, 1, 105, 195})
}

func TestLocalScaleAboutPivot(t *testing.T) {
	tr := IdentityTransform
	tr.ScaleX, tr.ScaleY = 2, 2
	tr.PivotX, tr.PivotY = 50, 50
	m := tr.local(0, 0)
	// The pivot stays put.
	x, y := transformPoint(m, 50, 50)
	assertNear(t, "pivot.x", x, 50)
	assertNear(t, "pivot.y", y, 50)
	x, y = transformPoint(m, 0, 0)
	assertNear(t, "corner.x", x, -50)
	assertNear(t, "corner.y", y, -50)
}

func TestLocalRotation90(t *testing.T) {
	tr := IdentityTransform
	tr.Rotation = math.Pi / 2
	got := tr.local(0, 0)
	assertMatrix(t, "rot90", got, [6]float64{0, 1, -1, 0, 0, 0})
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, 9}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestGeoMMatchesMatrix(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, 9}
	g := geoM(m)
	x, y := g.Apply(4, 6)
	wx, wy := transformPoint(m, 4, 6)
	assertNear(t, "x", x, wx)
	assertNear(t, "y", y, wy)
}

func TestElementCorners(t *testing.T) {
	el := motion.NewElement("card", 10, 20, 100, 50)
	vp := motion.NewViewport(400, 300)
	vp.ScrollY = 15

	c := ElementCorners(el, vp, IdentityTransform)
	want := [4]motion.Vec2{{X: 10, Y: 5}, {X: 110, Y: 5}, {X: 110, Y: 55}, {X: 10, Y: 55}}
	for i := range c {
		assertNear(t, "corner.x", c[i].X, want[i].X)
		assertNear(t, "corner.y", c[i].Y, want[i].Y)
	}
}

func TestTransformOfReadsNodeValues(t *testing.T) {
	o := motion.NewOrchestrator(nil, nil)
	el := motion.NewElement("card", 0, 0, 100, 40)
	n, err := o.MountNode(el, motion.OnMount(), motion.MotionSpec{
		Properties: map[string]motion.Property{
			"opacity": motion.Animate(0.5, 0.5),
			"x":       motion.Animate(12, 12),
			"scale":   motion.Animate(2, 2),
			"rotate":  motion.Animate(90, 90),
		},
		Timing: motion.Eased(0, nil, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	tr := TransformOf(100, 40, n)
	assertNear(t, "Alpha", tr.Alpha, 0.5)
	assertNear(t, "X", tr.X, 12)
	assertNear(t, "ScaleX", tr.ScaleX, 2)
	assertNear(t, "ScaleY", tr.ScaleY, 2)
	assertNear(t, "Rotation", tr.Rotation, math.Pi/2)
	assertNear(t, "PivotX", tr.PivotX, 50)
	assertNear(t, "PivotY", tr.PivotY, 20)
}

func TestTransformTiltForeshortens(t *testing.T) {
	o := motion.NewOrchestrator(nil, nil)
	el := motion.NewElement("card", 0, 0, 100, 100)
	n, err := o.MountNode(el, motion.OnMount(), motion.MotionSpec{
		Properties: map[string]motion.Property{
			"rotate": {Start: motion.Vec(60, 0), Target: motion.Vec(60, 0)},
		},
		Timing: motion.Eased(0, nil, 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	tr := TransformOf(100, 100, n)
	assertNear(t, "ScaleX", tr.ScaleX, 0.5)
	assertNear(t, "ScaleY", tr.ScaleY, 1)
	assertNear(t, "Rotation", tr.Rotation, 0)
}

func TestColorPremultiplied(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.rgba()
	if c.R != 128 || c.G != 64 || c.B != 0 || c.A != 128 {
		t.Errorf("rgba = %+v", c)
	}
}
