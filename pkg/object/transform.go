package object

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/scadtree/pkg/scad"
)

// ErrInvalidTransform reports a contradictory transform specification, such
// as a rotation given both as Euler angles and as an axis-angle pair.
var ErrInvalidTransform = errors.New("invalid transform specification")

// RotationSpec describes a rotation in either of the two forms OpenSCAD's
// rotate command accepts: per-axis Euler angles, or a scalar angle with an
// optional axis. Mixing the forms is contradictory and rejected at
// construction time, before any serialization.
type RotationSpec struct {
	Angles *Vec3    // Euler angles in degrees
	Angle  *float64 // scalar angle in degrees
	Axis   *Vec3    // rotation axis for Angle
}

// Rotate applies spec to o. The error paths all wrap ErrInvalidTransform.
func Rotate(o Object, spec RotationSpec) (Object, error) {
	switch {
	case spec.Angles != nil && spec.Axis != nil:
		return Object{}, fmt.Errorf("rotate: both Euler angles and an axis given: %w", ErrInvalidTransform)
	case spec.Angles != nil && spec.Angle != nil:
		return Object{}, fmt.Errorf("rotate: both Euler angles and a scalar angle given: %w", ErrInvalidTransform)
	case spec.Angles != nil:
		return o.Rotated(*spec.Angles), nil
	case spec.Angle != nil && spec.Axis != nil:
		return o.RotatedAround(*spec.Axis, *spec.Angle), nil
	case spec.Angle != nil:
		return o.wrapIn("rotate", scad.Argument{Name: "a", Value: *spec.Angle}), nil
	}
	return Object{}, fmt.Errorf("rotate: no angle given: %w", ErrInvalidTransform)
}

// Transformed applies an arbitrary homogeneous transform, emitted as a
// multmatrix command. The matrix is supplied by the sdfx library and treated
// as opaque: its cells are recovered by applying it to basis points rather
// than reading fields.
func (o Object) Transformed(m sdf.M44) Object {
	return o.wrapIn("multmatrix", scad.Argument{Name: "m", Value: matrixRows(m)})
}

// MatrixRotated rotates the object around an arbitrary axis using a
// rotation matrix from sdfx, baked into a multmatrix command. Use
// RotatedAround for the direct rotate(a, v) form.
func (o Object) MatrixRotated(axis Vec3, degrees float64) Object {
	m := sdf.Rotate3d(v3.Vec{X: axis.X, Y: axis.Y, Z: axis.Z}, degrees*math.Pi/180)
	return o.Transformed(m)
}

// MatrixMirroredXY reflects the object across the z = 0 plane using the
// mirror matrix from sdfx. Use Mirrored for the direct mirror(v) form.
func (o Object) MatrixMirroredXY() Object { return o.Transformed(sdf.MirrorXY()) }

// MatrixMirroredXZ reflects the object across the y = 0 plane.
func (o Object) MatrixMirroredXZ() Object { return o.Transformed(sdf.MirrorXZ()) }

// MatrixMirroredYZ reflects the object across the x = 0 plane.
func (o Object) MatrixMirroredYZ() Object { return o.Transformed(sdf.MirrorYZ()) }

// matrixRows converts an affine sdf.M44 to row-major multmatrix cells by
// transforming the origin and the three basis points. The bottom row of an
// affine transform is always [0 0 0 1].
func matrixRows(m sdf.M44) []any {
	t := m.MulPosition(v3.Vec{})
	x := m.MulPosition(v3.Vec{X: 1}).Sub(t)
	y := m.MulPosition(v3.Vec{Y: 1}).Sub(t)
	z := m.MulPosition(v3.Vec{Z: 1}).Sub(t)
	return []any{
		[]float64{x.X, y.X, z.X, t.X},
		[]float64{x.Y, y.Y, z.Y, t.Y},
		[]float64{x.Z, y.Z, z.Z, t.Z},
		[]float64{0, 0, 0, 1},
	}
}
