package systems

import (
	"math"

	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// noDir - "направления нет" для осей поиска.
const noDir = -1.0

// StepDirection поворачивает к yaw и пробует шагнуть.
// Если шаг удался, но монстр ещё развёрнут больше чем на 45°, позиция откатывается:
// поворот важнее движения. Успех при этом всё равно засчитывается.
func StepDirection(c *Context, ent *domain.Entity, yaw, dist float64) bool {
	ent.IdealYaw = yaw
	ChangeYaw(ent)

	move := domain.YawVector(yaw).Scale(dist)
	oldorigin := ent.Origin
	ok := MoveStep(c, ent, move, false)
	if ok {
		delta := domain.AngleMod(ent.Angles[domain.Yaw] - ent.IdealYaw)
		if delta > 45 && delta < 315 {
			ent.Origin = oldorigin
		}
	}
	relinkAndTouch(c, ent)
	return ok
}

// newChaseDir ищет курс к точке goal, когда прямой шаг не прошёл.
// Возвращает число попыток шага и успех.
func newChaseDir(c *Context, actor *domain.Entity, goal domain.Vec3, dist float64) (attempts int, ok bool) {
	try := func(yaw float64) bool {
		attempts++
		return StepDirection(c, actor, yaw, dist)
	}

	olddir := domain.AngleMod(float64(int(actor.IdealYaw/45)) * 45)
	turnaround := domain.AngleMod(olddir - 180)

	deltax := goal[0] - actor.Origin[0]
	deltay := goal[1] - actor.Origin[1]

	var d [3]float64
	switch {
	case deltax > 10:
		d[1] = 0
	case deltax < -10:
		d[1] = 180
	default:
		d[1] = noDir
	}
	switch {
	case deltay < -10:
		d[2] = 270
	case deltay > 10:
		d[2] = 90
	default:
		d[2] = noDir
	}

	// --- Прямой маршрут по диагонали ---
	if d[1] != noDir && d[2] != noDir {
		var tdir float64
		if d[1] == 0 {
			tdir = 315
			if d[2] == 90 {
				tdir = 45
			}
		} else {
			tdir = 225
			if d[2] == 90 {
				tdir = 135
			}
		}
		if tdir != turnaround && try(tdir) {
			return attempts, true
		}
	}

	// --- Оси по отдельности, порядок случайный ---
	if (c.Rng.Int()&3)&1 != 0 || math.Abs(deltay) > math.Abs(deltax) {
		d[1], d[2] = d[2], d[1]
	}
	if d[1] != noDir && d[1] != turnaround && try(d[1]) {
		return attempts, true
	}
	if d[2] != noDir && d[2] != turnaround && try(d[2]) {
		return attempts, true
	}

	// --- Прямого пути нет: старый курс, затем круговой перебор ---
	if try(olddir) {
		return attempts, true
	}
	if c.Rng.Int()&1 != 0 {
		for tdir := 0.0; tdir <= 315; tdir += 45 {
			if tdir != turnaround && try(tdir) {
				return attempts, true
			}
		}
	} else {
		for tdir := 315.0; tdir >= 0; tdir -= 45 {
			if tdir != turnaround && try(tdir) {
				return attempts, true
			}
		}
	}

	if try(turnaround) {
		return attempts, true
	}

	// Двигаться некуда
	actor.IdealYaw = olddir
	if !CheckBottom(c, actor) {
		actor.Flags |= domain.FlagPartialGround
	}
	if debugEnabled() {
		aiLogger(actor).WithFields(logrus.Fields{
			"attempts": attempts,
			"goal":     goal,
		}).Debug("Chase search failed, no heading available")
	}
	return attempts, false
}

// CloseEnough - коробки ent и goal, расширенные на dist, пересекаются.
func CloseEnough(ent, goal *domain.Entity, dist float64) bool {
	for i := 0; i < 3; i++ {
		if goal.AbsMin[i] > ent.AbsMax[i]+dist {
			return false
		}
		if goal.AbsMax[i] < ent.AbsMin[i]-dist {
			return false
		}
	}
	return true
}

// MoveToGoal двигает монстра на dist к его GoalEntity.
func MoveToGoal(c *Context, ent *domain.Entity, dist float64) {
	goal := c.Entity(ent.GoalEntity)
	if goal == nil {
		moveTowards(c, ent, domain.Vec3{}, false, dist)
		return
	}
	moveTowards(c, ent, goal.Origin, true, dist)
}

// moveTowards - общая часть MoveToGoal: цель задаётся точкой
// (сущность-цель или временная точка при обходе).
func moveTowards(c *Context, ent *domain.Entity, goal domain.Vec3, hasGoal bool, dist float64) {
	if !onGround(c, ent) && ent.Locomotion() == 0 {
		return
	}

	// Следующий шаг упрётся во врага: пусть сработает атака
	if enemy := c.Entity(ent.Enemy); enemy != nil && CloseEnough(ent, enemy, dist) {
		return
	}

	// Иногда сворачиваем без причины, чтобы не ходить как по рельсам
	if (c.Rng.Int()&3) == 1 || !StepDirection(c, ent, ent.IdealYaw, dist) {
		if ent.InUse && hasGoal {
			newChaseDir(c, ent, goal, dist)
		}
	}
}
