package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// Границы категорий дальности.
const (
	MeleeDistance = 80
	nearDistance  = 500
	midDistance   = 1000
)

// fovCosine - косинус половины угла обзора (около 72°).
const fovCosine = 0.3

// Range классифицирует расстояние между центрами двух сущностей.
func Range(self, other *domain.Entity) enums.Range {
	return rangeOf(other.Origin.Sub(self.Origin).Length())
}

func rangeOf(d float64) enums.Range {
	switch {
	case d < MeleeDistance:
		return enums.RangeMelee
	case d < nearDistance:
		return enums.RangeNear
	case d < midDistance:
		return enums.RangeMid
	default:
		return enums.RangeFar
	}
}

// Visible - линия от глаз до глаз не перекрыта миром.
// Другие монстры взгляд не загораживают.
func Visible(c *Context, self, other *domain.Entity) bool {
	var zero domain.Vec3
	tr := c.World.Trace(self.EyePosition(), zero, zero, other.EyePosition(), self.ID, domain.MaskOpaque)
	return tr.Fraction == 1
}

// InFront - цель внутри конуса обзора по курсу self.
func InFront(self, other *domain.Entity) bool {
	forward, _, _ := domain.AngleVectors(self.Angles)
	return inFrontOf(forward, other.Origin.Sub(self.Origin))
}

// inFrontOf - строгое сравнение: ровно на границе конуса цель не видна.
func inFrontOf(forward, delta domain.Vec3) bool {
	vec, _ := delta.Normalize()
	return vec.Dot(forward) > fovCosine
}
