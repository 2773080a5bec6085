package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// hearingDistance - дальше этого шум не слышен.
const hearingDistance = 1000

// darkLightLevel - в такой темноте цель не видна.
const darkLightLevel = 5

// FindTarget решает, не пора ли монстру взять нового врага.
// Возвращает true, если враг найден (или уже был этим кандидатом).
func FindTarget(c *Context, self *domain.Entity) bool {
	mi := self.Monster
	if mi == nil {
		return false
	}
	if mi.AIFlags.Has(domain.AIGoodGuy) {
		return false
	}
	// Идём к точке боя: не отвлекаемся
	if mi.AIFlags.Has(domain.AICombatPoint) {
		return false
	}

	// --- Выбор кандидата по приоритету ---
	lvl := c.Level
	ambush := self.SpawnFlags&domain.SpawnAmbush != 0
	heardit := false
	var candidate *domain.Entity

	switch {
	case lvl.Fresh(lvl.SightEntityFrame) && !lvl.SightEntity.IsNil() && !ambush:
		candidate = c.Entity(lvl.SightEntity)
		if candidate == nil {
			return false
		}
		if candidate.Enemy == self.Enemy {
			return false
		}
	case lvl.Fresh(lvl.SoundEntityFrame) && !lvl.SoundEntity.IsNil():
		candidate = c.Entity(lvl.SoundEntity)
		heardit = true
	case self.Enemy.IsNil() && lvl.Fresh(lvl.Sound2EntityFrame) && !lvl.Sound2Entity.IsNil() && !ambush:
		candidate = c.Entity(lvl.Sound2Entity)
		heardit = true
	default:
		candidate = c.Entity(lvl.SightClient)
	}

	// Кандидат исчез
	if candidate == nil {
		return false
	}
	if candidate.ID == self.Enemy {
		return true
	}

	// --- Годится ли кандидат вообще ---
	switch {
	case candidate.IsClient():
		if candidate.Flags.Has(domain.FlagNoTarget) {
			return false
		}
	case candidate.SvFlags.Has(domain.SvMonster):
		enemy := c.Entity(candidate.Enemy)
		if enemy == nil || enemy.Flags.Has(domain.FlagNoTarget) {
			return false
		}
	case heardit:
		owner := c.Entity(candidate.Owner)
		if owner == nil || owner.Flags.Has(domain.FlagNoTarget) {
			return false
		}
	default:
		return false
	}

	if !heardit {
		if !acceptSeen(c, self, candidate) {
			return false
		}
	} else if !acceptHeard(c, self, candidate) {
		return false
	}

	// --- Нашли ---
	if debugEnabled() {
		aiLogger(self).WithFields(logrus.Fields{
			"enemy": self.Enemy,
			"heard": heardit,
		}).Debug("Target acquired")
	}
	FoundTarget(c, self)
	if !mi.AIFlags.Has(domain.AISoundTarget) {
		if enemy := c.Entity(self.Enemy); enemy != nil {
			MonsterSight(c, self, enemy)
		}
	}
	return true
}

// acceptSeen - проверки для кандидата, которого монстр мог увидеть.
func acceptSeen(c *Context, self, candidate *domain.Entity) bool {
	r := Range(self, candidate)
	if r == enums.RangeFar {
		return false
	}
	if candidate.LightLevel <= darkLightLevel {
		return false
	}
	if !Visible(c, self, candidate) {
		return false
	}
	switch r {
	case enums.RangeNear:
		if candidate.ShowHostile < c.Now() && !InFront(self, candidate) {
			return false
		}
	case enums.RangeMid:
		if !InFront(self, candidate) {
			return false
		}
	}

	self.Enemy = candidate.ID
	if candidate.Kind != enums.KindNoise {
		self.Monster.AIFlags &^= domain.AISoundTarget
		if !candidate.IsClient() {
			// Увидели монстра, который кого-то преследует: берём его врага
			resolved := c.Entity(candidate.Enemy)
			if resolved == nil || !resolved.IsClient() {
				self.Enemy = types.NilEntityID
				return false
			}
			self.Enemy = resolved.ID
		}
	}
	return true
}

// acceptHeard - проверки для услышанного шума.
func acceptHeard(c *Context, self, candidate *domain.Entity) bool {
	if self.SpawnFlags&domain.SpawnAmbush != 0 {
		if !Visible(c, self, candidate) {
			return false
		}
	} else if !c.World.AreasConnected(self.Origin, candidate.Origin) {
		return false
	}

	temp := candidate.Origin.Sub(self.Origin)
	if temp.Length() > hearingDistance {
		return false
	}

	self.IdealYaw = domain.VecToYaw(temp)
	ChangeYaw(self)

	// Идём на звук, пока не увидим; без подтверждения со временем бросим
	self.Monster.AIFlags |= domain.AISoundTarget
	self.Enemy = candidate.ID
	return true
}

// FoundTarget - переход "враг найден": запоминаем, где он был, будим соседей,
// идём к назначенной точке боя или сразу в погоню.
func FoundTarget(c *Context, self *domain.Entity) {
	enemy := c.Entity(self.Enemy)
	if enemy == nil {
		return
	}
	mi := self.Monster
	now := c.Now()

	// Другие монстры какое-то время видят этого
	if enemy.IsClient() {
		c.Level.SightEntity = self.ID
		c.Level.SightEntityFrame = c.Level.FrameNum
		self.LightLevel = 128
	}

	self.ShowHostile = now + 1
	mi.LastSighting = enemy.Origin
	mi.TrailTime = now
	mi.SearchTime = now

	if self.CombatTarget == "" {
		HuntTarget(c, self)
		return
	}

	point := PickTarget(c, self.CombatTarget)
	if point == nil {
		aiLogger(self).WithField("combattarget", self.CombatTarget).Warn("Combat target not found")
		self.GoalEntity = enemy.ID
		self.MoveTarget = enemy.ID
		HuntTarget(c, self)
		return
	}

	// Точка боя одноразовая и теперь принадлежит этому монстру
	self.GoalEntity = point.ID
	self.MoveTarget = point.ID
	self.CombatTarget = ""
	mi.AIFlags |= domain.AICombatPoint
	point.TargetName = ""
	mi.PauseTime = 0
	MonsterRun(c, self)
}

// HuntTarget - прямая погоня за врагом.
func HuntTarget(c *Context, self *domain.Entity) {
	enemy := c.Entity(self.Enemy)
	if enemy == nil {
		return
	}
	self.GoalEntity = enemy.ID
	standGround := self.Monster.AIFlags.Has(domain.AIStandGround)
	if standGround {
		MonsterStand(c, self)
	} else {
		MonsterRun(c, self)
	}
	self.IdealYaw = domain.VecToYaw(enemy.Origin.Sub(self.Origin))

	// Первый выстрел не сразу
	if !standGround {
		AttackFinished(c, self, 1)
	}
}

// AttackFinished откладывает следующую дальнюю атаку.
func AttackFinished(c *Context, self *domain.Entity, delay float64) {
	self.Monster.AttackFinished = c.Now() + delay
}

// PickTarget выбирает одну из сущностей с данным targetname.
func PickTarget(c *Context, name string) *domain.Entity {
	choices := c.Pool.FindByTargetName(name)
	if len(choices) == 0 {
		return nil
	}
	return choices[c.Rng.Int()%len(choices)]
}
