package light

import (
	"errors"
	"fmt"

	"scene-raytracer/internal/mathutil"
)

var ErrZeroDirection = errors.New("light: directional light has zero direction")

// Kind tags the light variant.
type Kind uint8

const (
	KindDirectional Kind = iota
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Light is a closed union over directional and point lights.
// Direction is the way light travels (away from the source), used by
// KindDirectional. Position is used by KindPoint.
type Light struct {
	Kind      Kind
	Direction mathutil.Vec3
	Position  mathutil.Point3
}

func NewDirectional(direction mathutil.Vec3) Light {
	return Light{Kind: KindDirectional, Direction: direction}
}

func NewPoint(position mathutil.Point3) Light {
	return Light{Kind: KindPoint, Position: position}
}

// ToLight returns the unit direction from point toward the light.
// For a point light sitting exactly on point the result is the zero vector.
func (l Light) ToLight(point mathutil.Point3) mathutil.Vec3 {
	switch l.Kind {
	case KindDirectional:
		return l.Direction.Neg().Normalize()
	case KindPoint:
		return l.Position.Sub(point).Normalize()
	}
	return mathutil.Vec3{}
}

// Validate rejects lights that cannot produce a direction.
func (l Light) Validate() error {
	switch l.Kind {
	case KindDirectional:
		if l.Direction.IsZero() {
			return ErrZeroDirection
		}
		if !l.Direction.IsFinite() {
			return fmt.Errorf("light: direction %v is not finite", l.Direction)
		}
	case KindPoint:
		if !l.Position.AsVector().IsFinite() {
			return fmt.Errorf("light: position %v is not finite", l.Position)
		}
	default:
		return fmt.Errorf("light: unknown light %v", l.Kind)
	}
	return nil
}

func (l Light) String() string {
	switch l.Kind {
	case KindDirectional:
		return fmt.Sprintf("directional(%v)", l.Direction)
	case KindPoint:
		return fmt.Sprintf("point(%v)", l.Position)
	}
	return l.Kind.String()
}
