package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
)

// HurtSlow - флаг триггера урона: бить раз в секунду, а не каждый такт.
const HurtSlow = 16

// pathCornerTouch - монстр дошёл до точки маршрута: берём следующую.
func pathCornerTouch(c *Context, self, other *domain.Entity) {
	if other.MoveTarget != self.ID || other.Monster == nil {
		return
	}
	if !other.Enemy.IsNil() {
		return
	}

	var next *domain.Entity
	if self.Target != "" {
		next = PickTarget(c, self.Target)
	}
	nextID := types.NilEntityID
	if next != nil {
		nextID = next.ID
	}
	other.GoalEntity = nextID
	other.MoveTarget = nextID

	if self.Wait != 0 {
		other.Monster.PauseTime = c.Now() + self.Wait
		MonsterStand(c, other)
		return
	}

	if next == nil {
		other.Monster.PauseTime = c.Now() + domain.LongPause
		MonsterStand(c, other)
		return
	}
	other.IdealYaw = domain.VecToYaw(next.Origin.Sub(other.Origin))
}

// pointCombatTouch - монстр добежал до точки боя.
func pointCombatTouch(c *Context, self, other *domain.Entity) {
	if other.MoveTarget != self.ID || other.Monster == nil {
		return
	}

	if self.Target != "" {
		// Цепочка точек боя
		other.Target = self.Target
		next := PickTarget(c, other.Target)
		if next == nil {
			logger.Component("waypoints").WithField("target", self.Target).Warn("Combat point target not found")
			other.GoalEntity = types.NilEntityID
			other.MoveTarget = self.ID
		} else {
			other.GoalEntity = next.ID
			other.MoveTarget = next.ID
		}
		self.Target = ""
	} else if self.SpawnFlags&domain.SpawnCombatHold != 0 && other.Locomotion() == 0 {
		other.Monster.PauseTime = c.Now() + domain.LongPause
		other.Monster.AIFlags |= domain.AIStandGround
		MonsterStand(c, other)
	}

	if other.MoveTarget == self.ID {
		other.Target = ""
		other.MoveTarget = types.NilEntityID
		other.GoalEntity = other.Enemy
		other.Monster.AIFlags &^= domain.AICombatPoint
	}
}

// hurtTouch - зона урона бьёт всё, что может получать урон, не чаще раза в такт.
func hurtTouch(c *Context, self, other *domain.Entity) {
	if other.TakeDamage == domain.DamageNo {
		return
	}
	now := c.Now()
	if self.Timestamp > now {
		return
	}
	if self.SpawnFlags&HurtSlow != 0 {
		self.Timestamp = now + 1
	} else {
		self.Timestamp = now + domain.FrameTime
	}
	Damage(c, other, self, self, domain.Vec3{}, other.Origin, self.Dmg, self.Dmg)
}
