package systems

import (
	"math"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// StepSize - максимальная высота ступеньки, на которую монстр шагает без прыжка.
const StepSize = 18

// onGround - стоит ли сущность на живой опоре.
func onGround(c *Context, e *domain.Entity) bool {
	return c.Entity(e.GroundEntity) != nil
}

// CheckBottom проверяет, что под всеми углами коробки есть пол
// не глубже одной ступеньки.
func CheckBottom(c *Context, ent *domain.Entity) bool {
	mins, maxs := ent.Box()

	// --- Быстрая проверка: все четыре угла чуть ниже ног в твёрдом ---
	var start domain.Vec3
	start[2] = mins[2] - 1
	quick := true
	for x := 0; x <= 1 && quick; x++ {
		for y := 0; y <= 1; y++ {
			start[0] = pick(x, mins[0], maxs[0])
			start[1] = pick(y, mins[1], maxs[1])
			if c.World.PointContents(start) != domain.ContentsSolid {
				quick = false
				break
			}
		}
	}
	if quick {
		return true
	}

	// --- Честная проверка трассами ---
	var zero domain.Vec3
	start[2] = mins[2]
	start[0] = (mins[0] + maxs[0]) * 0.5
	start[1] = (mins[1] + maxs[1]) * 0.5
	stop := start
	stop[2] = start[2] - 2*StepSize

	tr := c.World.Trace(start, zero, zero, stop, ent.ID, domain.MaskMonsterSolid)
	if tr.Fraction == 1 {
		return false
	}
	mid := tr.EndPos[2]

	// Все углы должны быть почти на той же высоте, что и центр
	for x := 0; x <= 1; x++ {
		for y := 0; y <= 1; y++ {
			start[0] = pick(x, mins[0], maxs[0])
			start[1] = pick(y, mins[1], maxs[1])
			stop[0], stop[1] = start[0], start[1]

			tr = c.World.Trace(start, zero, zero, stop, ent.ID, domain.MaskMonsterSolid)
			if tr.Fraction == 1 || mid-tr.EndPos[2] > StepSize {
				return false
			}
		}
	}
	return true
}

func pick(i int, lo, hi float64) float64 {
	if i == 0 {
		return lo
	}
	return hi
}

// MoveStep пытается сдвинуть сущность на move. При неудаче позиция не меняется.
// relink - перерегистрировать сущность и обработать касания триггеров.
func MoveStep(c *Context, ent *domain.Entity, move domain.Vec3, relink bool) bool {
	if ent.Locomotion() != 0 {
		return flyStep(c, ent, move, relink)
	}

	oldorg := ent.Origin
	neworg := oldorg.Add(move)

	// Опускаем коробку с высоты ступеньки над целевой точкой
	stepsize := float64(StepSize)
	if ent.Monster != nil && ent.Monster.AIFlags.Has(domain.AINoStep) {
		stepsize = 1
	}
	neworg[2] += stepsize
	end := neworg
	end[2] -= stepsize * 2

	tr := c.World.Trace(neworg, ent.Mins, ent.Maxs, end, ent.ID, domain.MaskMonsterSolid)
	if tr.AllSolid {
		return false
	}
	if tr.StartSolid {
		neworg[2] -= stepsize
		tr = c.World.Trace(neworg, ent.Mins, ent.Maxs, end, ent.ID, domain.MaskMonsterSolid)
		if tr.AllSolid || tr.StartSolid {
			return false
		}
	}

	// Сухопутные сами в воду не лезут
	if ent.WaterLevel == 0 {
		test := tr.EndPos
		test[2] += ent.Mins[2] + 1
		if c.World.PointContents(test)&domain.MaskWater != 0 {
			return false
		}
	}

	if tr.Fraction == 1 {
		// Опору выбили из-под ног: можно падать
		if ent.Flags.Has(domain.FlagPartialGround) {
			ent.Origin = ent.Origin.Add(move)
			if relink {
				relinkAndTouch(c, ent)
			}
			ent.GroundEntity = types.NilEntityID
			return true
		}
		return false // край обрыва
	}

	ent.Origin = tr.EndPos
	if !CheckBottom(c, ent) {
		if ent.Flags.Has(domain.FlagPartialGround) {
			// Пол почти весь ушёл, монстр пытается выбраться
			if relink {
				relinkAndTouch(c, ent)
			}
			return true
		}
		ent.Origin = oldorg
		return false
	}

	ent.Flags &^= domain.FlagPartialGround
	ent.GroundEntity = tr.Ent
	if ground := c.Entity(tr.Ent); ground != nil {
		ent.GroundLinkCount = ground.LinkCount
	}
	if relink {
		relinkAndTouch(c, ent)
	}
	return true
}

// flyStep - вариант для летающих и плавающих: пробует шаг с подстройкой высоты
// под цель, затем без неё. Добровольно границу воды не пересекает.
func flyStep(c *Context, ent *domain.Entity, move domain.Vec3, relink bool) bool {
	enemy := c.Entity(ent.Enemy)
	for i := 0; i < 2; i++ {
		neworg := ent.Origin.Add(move)
		if i == 0 && enemy != nil {
			goal := c.Entity(ent.GoalEntity)
			if goal == nil {
				ent.GoalEntity = enemy.ID
				goal = enemy
			}
			dz := ent.Origin[2] - goal.Origin[2]
			if goal.IsClient() {
				if dz > 40 {
					neworg[2] -= 8
				}
				if !(ent.Flags.Has(domain.FlagSwim) && ent.WaterLevel < 2) && dz < 30 {
					neworg[2] += 8
				}
			} else {
				switch {
				case dz > 8:
					neworg[2] -= 8
				case dz > 0:
					neworg[2] -= dz
				case dz < -8:
					neworg[2] += 8
				default:
					neworg[2] += dz
				}
			}
		}

		tr := c.World.Trace(ent.Origin, ent.Mins, ent.Maxs, neworg, ent.ID, domain.MaskMonsterSolid)

		test := tr.EndPos
		test[2] += ent.Mins[2] + 1
		inWater := c.World.PointContents(test)&domain.MaskWater != 0
		if ent.Flags.Has(domain.FlagFly) && ent.WaterLevel == 0 && inWater {
			return false
		}
		if ent.Flags.Has(domain.FlagSwim) && ent.WaterLevel < 2 && !inWater {
			return false
		}

		if tr.Fraction == 1 {
			ent.Origin = tr.EndPos
			if relink {
				relinkAndTouch(c, ent)
			}
			return true
		}
		if enemy == nil {
			break
		}
	}
	return false
}

func relinkAndTouch(c *Context, ent *domain.Entity) {
	c.World.LinkEntity(ent)
	TouchTriggers(c, ent)
}

// ChangeYaw поворачивает к IdealYaw не больше чем на YawSpeed за вызов.
func ChangeYaw(ent *domain.Entity) {
	current := domain.AngleMod(ent.Angles[domain.Yaw])
	ideal := ent.IdealYaw
	if current == ideal {
		return
	}

	move := ideal - current
	speed := ent.YawSpeed
	if ideal > current {
		if move >= 180 {
			move -= 360
		}
	} else if move <= -180 {
		move += 360
	}
	move = math.Max(-speed, math.Min(speed, move))

	ent.Angles[domain.Yaw] = domain.AngleMod(current + move)
}

// WalkMove - шаг по курсу yaw на dist. Без опоры шагают только летуны и пловцы.
func WalkMove(c *Context, ent *domain.Entity, yaw, dist float64) bool {
	if !onGround(c, ent) && ent.Locomotion() == 0 {
		return false
	}
	return MoveStep(c, ent, domain.YawVector(yaw).Scale(dist), true)
}

// FacingIdeal - отклонение курса от желаемого не больше 45°.
func FacingIdeal(ent *domain.Entity) bool {
	delta := domain.AngleMod(ent.Angles[domain.Yaw] - ent.IdealYaw)
	return !(delta > 45 && delta < 315)
}
