package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/systems"
)

// ErrBadMoveType - у сущности неизвестный тип движения.
// Единственная ошибка, которая останавливает цикл кадров.
var ErrBadMoveType = errors.New("bad movetype")

const (
	maxVelocity   = 2000
	maxClipPlanes = 5
	waterFriction = 1
	// Отскок для MoveTypeBounce
	bounceBackoff = 1.5
)

// Результат flyMove: во что упёрлись.
const (
	blockedFloor = 1
	blockedStep  = 2
	blockedAll   = 3
	blockedDead  = 7
)

// runEntity - физика сущности по типу движения. Think вызывается изнутри.
func (i *Instance) runEntity(ent *domain.Entity) error {
	switch ent.MoveType {
	case enums.MoveTypeNone:
		systems.RunThink(i.Ctx, ent)
	case enums.MoveTypeNoclip:
		i.physicsNoclip(ent)
	case enums.MoveTypeStep:
		i.physicsStep(ent)
	case enums.MoveTypeToss, enums.MoveTypeBounce, enums.MoveTypeFly, enums.MoveTypeFlyMissile:
		i.physicsToss(ent)
	default:
		return fmt.Errorf("entity %s (%s) movetype %s: %w", ent.ID, ent.ClassName, ent.MoveType, ErrBadMoveType)
	}
	return nil
}

// --- Типы движения ---

// physicsNoclip - сквозь всё, только по скорости.
func (i *Instance) physicsNoclip(ent *domain.Entity) {
	systems.RunThink(i.Ctx, ent)
	if !ent.InUse {
		return
	}
	ent.Origin = ent.Origin.MA(domain.FrameTime, ent.Velocity)
	i.World.LinkEntity(ent)
}

// physicsToss - гравитация и падение до опоры (трупы, снаряды).
func (i *Instance) physicsToss(ent *domain.Entity) {
	c := i.Ctx
	systems.RunThink(c, ent)
	if !ent.InUse {
		return
	}

	if ent.Velocity[2] > 0 {
		ent.GroundEntity = types.NilEntityID
	}
	if !ent.GroundEntity.IsNil() && c.Entity(ent.GroundEntity) == nil {
		ent.GroundEntity = types.NilEntityID
	}
	// Лежит на опоре
	if !ent.GroundEntity.IsNil() {
		return
	}

	i.checkVelocity(ent)
	if ent.MoveType != enums.MoveTypeFly && ent.MoveType != enums.MoveTypeFlyMissile {
		i.addGravity(ent)
	}

	tr := i.pushEntity(ent, ent.Velocity.Scale(domain.FrameTime))
	if !ent.InUse {
		return
	}

	if tr.Fraction < 1 {
		backoff := 1.0
		if ent.MoveType == enums.MoveTypeBounce {
			backoff = bounceBackoff
		}
		ent.Velocity = domain.ClipVelocity(ent.Velocity, tr.Normal, backoff)

		// Остановка на полу
		if tr.Normal[2] > 0.7 && (ent.Velocity[2] < 60 || ent.MoveType != enums.MoveTypeBounce) {
			ent.GroundEntity = tr.Ent
			if ground := c.Entity(tr.Ent); ground != nil {
				ent.GroundLinkCount = ground.LinkCount
			}
			ent.Velocity = domain.Vec3{}
		}
	}
	systems.CategorizePosition(c, ent)
}

// physicsStep - монстры: шагают сами через think, а скорость получают
// только от внешних сил (отбрасывание, падение).
func (i *Instance) physicsStep(ent *domain.Entity) {
	c := i.Ctx
	if ent.GroundEntity.IsNil() {
		systems.CheckGround(c, ent)
	}
	wasOnGround := !ent.GroundEntity.IsNil()

	i.checkVelocity(ent)

	// Гравитация, если не летаем и не плывём
	if !wasOnGround && !ent.Flags.Has(domain.FlagFly) &&
		!(ent.Flags.Has(domain.FlagSwim) && ent.WaterLevel > 2) && ent.WaterLevel == 0 {
		i.addGravity(ent)
	}

	// Вертикальное трение в воздухе и в воде
	if ent.Flags.Has(domain.FlagFly) && ent.Velocity[2] != 0 {
		ent.Velocity[2] = i.slowDown(ent.Velocity[2], i.Cfg.Friction/3)
	}
	if ent.Flags.Has(domain.FlagSwim) && ent.Velocity[2] != 0 {
		ent.Velocity[2] = i.slowDown(ent.Velocity[2], waterFriction*float64(ent.WaterLevel))
	}

	if ent.Velocity != (domain.Vec3{}) {
		// Трение о пол. Труп на краю обрыва соскальзывает без трения.
		if (wasOnGround || ent.Locomotion() != 0) && !(ent.Health <= 0 && !systems.CheckBottom(c, ent)) {
			i.groundFriction(ent)
		}

		mask := domain.MaskSolid
		if ent.SvFlags.Has(domain.SvMonster) {
			mask = domain.MaskMonsterSolid
		}
		i.flyMove(ent, domain.FrameTime, mask)
		i.World.LinkEntity(ent)
		systems.TouchTriggers(c, ent)
		if !ent.InUse {
			return
		}
	}

	systems.RunThink(c, ent)
}

// --- Вспомогательные ---

func (i *Instance) addGravity(ent *domain.Entity) {
	ent.Velocity[2] -= i.Cfg.Gravity * domain.FrameTime
}

func (i *Instance) checkVelocity(ent *domain.Entity) {
	for k := range ent.Velocity {
		ent.Velocity[k] = math.Max(-maxVelocity, math.Min(maxVelocity, ent.Velocity[k]))
	}
}

// slowDown - трение одной компоненты скорости.
func (i *Instance) slowDown(v, friction float64) float64 {
	speed := math.Abs(v)
	control := math.Max(speed, i.Cfg.StopSpeed)
	newspeed := math.Max(0, speed-domain.FrameTime*control*friction)
	return v * newspeed / speed
}

func (i *Instance) groundFriction(ent *domain.Entity) {
	speed := math.Hypot(ent.Velocity[0], ent.Velocity[1])
	if speed == 0 {
		return
	}
	control := math.Max(speed, i.Cfg.StopSpeed)
	newspeed := math.Max(0, speed-domain.FrameTime*control*i.Cfg.Friction)
	ent.Velocity[0] *= newspeed / speed
	ent.Velocity[1] *= newspeed / speed
}

// pushEntity сдвигает сущность на push до первого препятствия.
func (i *Instance) pushEntity(ent *domain.Entity, push domain.Vec3) domain.Trace {
	mask := ent.ClipMask
	if mask == 0 {
		mask = domain.MaskSolid
	}
	tr := i.World.Trace(ent.Origin, ent.Mins, ent.Maxs, ent.Origin.Add(push), ent.ID, mask)
	ent.Origin = tr.EndPos
	i.World.LinkEntity(ent)
	if ent.InUse {
		systems.TouchTriggers(i.Ctx, ent)
	}
	return tr
}

// flyMove двигает сущность по скорости за время dt, скользя вдоль
// плоскостей, в которые упирается. Возвращает маску blocked*.
func (i *Instance) flyMove(ent *domain.Entity, dt float64, mask domain.Contents) int {
	c := i.Ctx
	primal := ent.Velocity
	original := ent.Velocity
	var planes [maxClipPlanes]domain.Vec3
	numPlanes := 0
	blocked := 0
	timeLeft := dt

	ent.GroundEntity = types.NilEntityID
	for bump := 0; bump < 4; bump++ {
		end := ent.Origin.MA(timeLeft, ent.Velocity)
		tr := i.World.Trace(ent.Origin, ent.Mins, ent.Maxs, end, ent.ID, mask)
		if tr.AllSolid {
			ent.Velocity = domain.Vec3{}
			return blockedAll
		}
		if tr.Fraction > 0 {
			ent.Origin = tr.EndPos
			original = ent.Velocity
			numPlanes = 0
		}
		if tr.Fraction == 1 {
			break
		}

		if tr.Normal[2] > 0.7 {
			blocked |= blockedFloor
			if hit := c.Entity(tr.Ent); hit != nil && hit.Kind == enums.KindWorld {
				ent.GroundEntity = hit.ID
				ent.GroundLinkCount = hit.LinkCount
			}
		}
		if tr.Normal[2] == 0 {
			blocked |= blockedStep
		}

		timeLeft -= timeLeft * tr.Fraction
		if numPlanes >= maxClipPlanes {
			ent.Velocity = domain.Vec3{}
			return blockedAll
		}
		planes[numPlanes] = tr.Normal
		numPlanes++

		// Скорость, параллельная всем плоскостям
		var next domain.Vec3
		found := false
		for p := 0; p < numPlanes && !found; p++ {
			next = domain.ClipVelocity(original, planes[p], 1)
			found = true
			for q := 0; q < numPlanes; q++ {
				if q != p && next.Dot(planes[q]) < 0 {
					found = false
					break
				}
			}
		}

		if found {
			ent.Velocity = next
		} else {
			// Зажаты между двумя плоскостями: скользим вдоль ребра
			if numPlanes != 2 {
				ent.Velocity = domain.Vec3{}
				return blockedDead
			}
			dir := planes[0].Cross(planes[1])
			ent.Velocity = dir.Scale(dir.Dot(ent.Velocity))
		}

		// Развернулись против исходного направления: стоп, чтобы не дрожать в углу
		if ent.Velocity.Dot(primal) <= 0 {
			ent.Velocity = domain.Vec3{}
			return blocked
		}
	}
	return blocked
}
