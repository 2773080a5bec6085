package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// CheckGround обновляет опору: пол ищется на четверть юнита ниже коробки.
func CheckGround(c *Context, ent *domain.Entity) {
	if ent.Locomotion() != 0 {
		return
	}
	if ent.Velocity[2] > 100 {
		ent.GroundEntity = types.NilEntityID
		return
	}

	point := ent.Origin
	point[2] -= 0.25
	tr := c.World.Trace(ent.Origin, ent.Mins, ent.Maxs, point, ent.ID, domain.MaskMonsterSolid)

	// Слишком крутой склон опорой не считается
	if tr.Normal[2] < 0.7 && !tr.StartSolid {
		ent.GroundEntity = types.NilEntityID
		return
	}
	if !tr.StartSolid && !tr.AllSolid {
		ent.Origin = tr.EndPos
		ent.GroundEntity = tr.Ent
		if ground := c.Entity(tr.Ent); ground != nil {
			ent.GroundLinkCount = ground.LinkCount
		}
		ent.Velocity[2] = 0
	}
}

// CategorizePosition определяет, насколько глубоко сущность в воде.
func CategorizePosition(c *Context, ent *domain.Entity) {
	point := ent.Origin
	point[2] += ent.Mins[2] + 1
	cont := c.World.PointContents(point)
	if cont&domain.MaskWater == 0 {
		ent.WaterLevel = 0
		ent.WaterType = 0
		return
	}
	ent.WaterType = cont
	ent.WaterLevel = 1

	point[2] += 26
	if c.World.PointContents(point)&domain.MaskWater == 0 {
		return
	}
	ent.WaterLevel = 2

	point[2] += 22
	if c.World.PointContents(point)&domain.MaskWater != 0 {
		ent.WaterLevel = 3
	}
}

// DropToFloor опускает сущность на пол не дальше 256 юнитов вниз.
func DropToFloor(c *Context, ent *domain.Entity) {
	ent.Origin[2]++
	end := ent.Origin
	end[2] -= 256

	tr := c.World.Trace(ent.Origin, ent.Mins, ent.Maxs, end, ent.ID, domain.MaskMonsterSolid)
	if tr.Fraction == 1 || tr.AllSolid {
		return
	}
	ent.Origin = tr.EndPos
	c.World.LinkEntity(ent)
	CheckGround(c, ent)
	CategorizePosition(c, ent)
}
