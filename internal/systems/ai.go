package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// lostSightTimeout - сколько секунд монстр ищет пропавшего врага, прежде чем бросить.
const lostSightTimeout = 20

// soundStandDistance - подойдя к источнику шума ближе, монстр останавливается и ждёт.
const soundStandDistance = 64

// flankOffset - боковое смещение пробных трасс при обходе.
const flankOffset = 16

// --- Поведенческие функции кадров ---

// AIStand - стоит на месте. dist позволяет подвинуться без смены курса.
func AIStand(c *Context, self *domain.Entity, t *Tick, dist float64) {
	mi := self.Monster
	if dist != 0 {
		WalkMove(c, self, self.Angles[domain.Yaw], dist)
	}

	if mi.AIFlags.Has(domain.AIStandGround) {
		if enemy := c.Entity(self.Enemy); enemy != nil {
			self.IdealYaw = domain.VecToYaw(enemy.Origin.Sub(self.Origin))
			if self.Angles[domain.Yaw] != self.IdealYaw && mi.AIFlags.Has(domain.AITempStandGround) {
				mi.AIFlags &^= domain.AIStandGround | domain.AITempStandGround
				MonsterRun(c, self)
			}
			ChangeYaw(self)
			CheckAttack(c, self, t)
		} else {
			FindTarget(c, self)
		}
		return
	}

	if FindTarget(c, self) {
		return
	}

	now := c.Now()
	if now > mi.PauseTime {
		MonsterWalk(c, self)
		return
	}

	if self.SpawnFlags&domain.SpawnAmbush == 0 && now > mi.IdleTime {
		if mi.IdleTime != 0 {
			MonsterIdle(c, self)
			mi.IdleTime = now + 15 + c.Rng.Float()*15
		} else {
			mi.IdleTime = now + c.Rng.Float()*15
		}
	}
}

// AIWalk - патруль к GoalEntity.
func AIWalk(c *Context, self *domain.Entity, t *Tick, dist float64) {
	mi := self.Monster
	MoveToGoal(c, self, dist)

	if FindTarget(c, self) {
		return
	}

	now := c.Now()
	if now > mi.IdleTime {
		if mi.IdleTime != 0 {
			MonsterSearch(c, self)
			mi.IdleTime = now + 15 + c.Rng.Float()*15
		} else {
			mi.IdleTime = now + c.Rng.Float()*15
		}
	}
}

// AICharge - развернуться к врагу и, если dist != 0, шагнуть вперёд.
func AICharge(c *Context, self *domain.Entity, t *Tick, dist float64) {
	if enemy := c.Entity(self.Enemy); enemy != nil {
		self.IdealYaw = domain.VecToYaw(enemy.Origin.Sub(self.Origin))
	}
	ChangeYaw(self)
	if dist != 0 {
		WalkMove(c, self, self.Angles[domain.Yaw], dist)
	}
}

// AIMove - просто шаг по текущему курсу.
func AIMove(c *Context, self *domain.Entity, t *Tick, dist float64) {
	WalkMove(c, self, self.Angles[domain.Yaw], dist)
}

// AITurn - поворот на месте с поиском цели.
func AITurn(c *Context, self *domain.Entity, t *Tick, dist float64) {
	if dist != 0 {
		WalkMove(c, self, self.Angles[domain.Yaw], dist)
	}
	if FindTarget(c, self) {
		return
	}
	ChangeYaw(self)
}

// AIRun - монстр с врагом: погоня, атака, поиск пропавшего.
func AIRun(c *Context, self *domain.Entity, t *Tick, dist float64) {
	mi := self.Monster

	// К точке боя идём без остановок
	if mi.AIFlags.Has(domain.AICombatPoint) {
		MoveToGoal(c, self, dist)
		return
	}

	if mi.AIFlags.Has(domain.AISoundTarget) {
		enemy := c.Entity(self.Enemy)
		if enemy != nil && self.Origin.Sub(enemy.Origin).Length() < soundStandDistance {
			mi.AIFlags |= domain.AIStandGround | domain.AITempStandGround
			MonsterStand(c, self)
			return
		}
		MoveToGoal(c, self, dist)
		if !FindTarget(c, self) {
			return
		}
	}

	if CheckAttack(c, self, t) {
		return
	}

	if mi.AttackState == enums.AttackSliding {
		aiRunSlide(c, self, t, dist)
		return
	}

	enemy := c.Entity(self.Enemy)
	if enemy == nil {
		return
	}

	if t.EnemyVis {
		MoveToGoal(c, self, dist)
		mi.AIFlags &^= domain.AILostSight | domain.AIWandering
		mi.LastSighting = enemy.Origin
		mi.TrailTime = c.Now()
		return
	}

	// В кооперативе ищем другого игрока
	if c.Coop && FindTarget(c, self) {
		return
	}

	// Слишком долго не видели: бросаем след и бродим
	if mi.AIFlags.Has(domain.AIWandering) || c.Now()-mi.SearchTime > lostSightTimeout+domain.FrameTime/2 {
		if !mi.AIFlags.Has(domain.AIWandering) {
			mi.AIFlags |= domain.AIWandering
			mi.AIFlags &^= domain.AIPursuitLastSeen | domain.AIPursueNext | domain.AIPursueTemp
			if debugEnabled() {
				aiLogger(self).WithField("lastSighting", mi.LastSighting).Debug("Lost the enemy, wandering")
			}
		}
		aiWander(c, self, dist)
		return
	}

	pursueLastSighting(c, self, dist)
}

// pursueLastSighting - идём туда, где врага видели в последний раз,
// при необходимости обходя препятствие слева или справа.
func pursueLastSighting(c *Context, self *domain.Entity, dist float64) {
	mi := self.Monster
	isNew := false

	if !mi.AIFlags.Has(domain.AILostSight) {
		// Только что потеряли: решаем, куда идти
		mi.AIFlags |= domain.AILostSight | domain.AIPursuitLastSeen
		mi.AIFlags &^= domain.AIPursueNext | domain.AIPursueTemp
		isNew = true
	}

	if mi.AIFlags.Has(domain.AIPursueNext) {
		mi.AIFlags &^= domain.AIPursueNext
		if mi.AIFlags.Has(domain.AIPursueTemp) {
			// Дошли до точки обхода, возвращаемся к настоящей цели
			mi.AIFlags &^= domain.AIPursueTemp
			mi.LastSighting = mi.SavedGoal
			isNew = true
		} else {
			mi.AIFlags &^= domain.AIPursuitLastSeen
		}
	}

	d1 := self.Origin.Sub(mi.LastSighting).Length()
	if d1 <= dist {
		mi.AIFlags |= domain.AIPursueNext
		dist = d1
	}

	goal := mi.LastSighting
	if isNew {
		goal = pickFlank(c, self, goal)
	}
	moveTowards(c, self, goal, true, dist)
}

// pickFlank проверяет прямую до goal и, если она перекрыта, выбирает
// более свободный обход слева или справа как временную цель.
func pickFlank(c *Context, self *domain.Entity, goal domain.Vec3) domain.Vec3 {
	mi := self.Monster
	tr := c.World.Trace(self.Origin, self.Mins, self.Maxs, goal, self.ID, domain.MaskPlayerSolid)
	if tr.Fraction >= 1 {
		return goal
	}

	v := goal.Sub(self.Origin)
	d1 := v.Length()
	center := tr.Fraction
	d2 := d1 * ((center + 1) / 2)
	self.IdealYaw = domain.VecToYaw(v)
	self.Angles[domain.Yaw] = self.IdealYaw
	forward, right, _ := domain.AngleVectors(self.Angles)

	leftTarget := domain.ProjectSource(self.Origin, domain.Vec3{d2, -flankOffset, 0}, forward, right)
	left := c.World.Trace(self.Origin, self.Mins, self.Maxs, leftTarget, self.ID, domain.MaskPlayerSolid).Fraction

	rightTarget := domain.ProjectSource(self.Origin, domain.Vec3{d2, flankOffset, 0}, forward, right)
	rightFrac := c.World.Trace(self.Origin, self.Mins, self.Maxs, rightTarget, self.ID, domain.MaskPlayerSolid).Fraction

	center = (d1 * center) / d2

	var side float64
	var frac float64
	var target domain.Vec3
	switch {
	case left >= center && left > rightFrac:
		side, frac, target = -flankOffset, left, leftTarget
	case rightFrac >= center && rightFrac > left:
		side, frac, target = flankOffset, rightFrac, rightTarget
	default:
		return goal
	}
	if frac < 1 {
		target = domain.ProjectSource(self.Origin, domain.Vec3{d2 * frac * 0.5, side, 0}, forward, right)
	}

	mi.SavedGoal = mi.LastSighting
	mi.AIFlags |= domain.AIPursueTemp
	mi.LastSighting = target
	self.IdealYaw = domain.VecToYaw(target.Sub(self.Origin))
	self.Angles[domain.Yaw] = self.IdealYaw

	if debugEnabled() {
		aiLogger(self).WithFields(logrus.Fields{
			"side":   side,
			"target": target,
		}).Debug("Flanking around obstacle")
	}
	return target
}

// aiWander - бесцельное блуждание: идём по курсу, упёршись или изредка
// без причины выбираем новый из восьми направлений.
func aiWander(c *Context, self *domain.Entity, dist float64) {
	if c.Rng.Int()%8 == 0 || !WalkMove(c, self, self.IdealYaw, dist) {
		self.IdealYaw = float64(c.Rng.Int()%8) * 45
	}
	ChangeYaw(self)
}

// --- Атакующие подфункции AIRun ---

func aiRunMelee(c *Context, self *domain.Entity, t *Tick) {
	self.IdealYaw = t.EnemyYaw
	ChangeYaw(self)
	if FacingIdeal(self) {
		MonsterMelee(c, self)
		self.Monster.AttackState = enums.AttackStraight
	}
}

func aiRunMissile(c *Context, self *domain.Entity, t *Tick) {
	self.IdealYaw = t.EnemyYaw
	ChangeYaw(self)
	if FacingIdeal(self) {
		MonsterAttack(c, self)
		self.Monster.AttackState = enums.AttackStraight
	}
}

// aiRunSlide - летуны кружат вокруг врага боком, меняя сторону при упоре.
func aiRunSlide(c *Context, self *domain.Entity, t *Tick, dist float64) {
	mi := self.Monster
	self.IdealYaw = t.EnemyYaw
	ChangeYaw(self)

	ofs := -90.0
	if mi.Lefty {
		ofs = 90
	}
	if WalkMove(c, self, self.IdealYaw+ofs, dist) {
		return
	}
	mi.Lefty = !mi.Lefty
	WalkMove(c, self, self.IdealYaw-ofs, dist)
}
