package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Значения по умолчанию, если вид их не задаёт.
const (
	defaultWalkYawSpeed   = 20
	defaultFlyYawSpeed    = 10
	defaultViewHeight     = 25
	defaultSwimViewHeight = 10
)

// StartMonster превращает выделенную сущность в монстра вида sp:
// размеры, здоровье, стойка, опускание на пол и выбор первой цели.
func StartMonster(c *Context, self *domain.Entity, sp *domain.Species) {
	log := logger.Component("spawn").WithFields(logrus.Fields{
		"entity":  self.ID,
		"species": sp.Name,
	})

	scale := sp.Scale
	if scale == 0 {
		scale = 1
	}
	self.Monster = &domain.MonsterInfo{Species: sp, Scale: scale}
	if self.ClassName == "" {
		self.ClassName = "monster_" + sp.Name
	}

	// --- Физика ---
	self.Mins, self.Maxs = sp.Mins, sp.Maxs
	self.Solid = domain.SolidBBox
	self.MoveType = enums.MoveTypeStep
	self.ClipMask = domain.MaskMonsterSolid
	self.Flags |= sp.Locomotion
	self.Mass = sp.Mass
	self.OldOrigin = self.Origin
	self.IdealYaw = self.Angles[domain.Yaw]

	self.YawSpeed = sp.YawSpeed
	if self.YawSpeed == 0 {
		self.YawSpeed = defaultWalkYawSpeed
		if sp.Locomotion != 0 {
			self.YawSpeed = defaultFlyYawSpeed
		}
	}
	self.ViewHeight = sp.ViewHeight
	if self.ViewHeight == 0 {
		self.ViewHeight = defaultViewHeight
		if sp.Locomotion.Has(domain.FlagSwim) {
			self.ViewHeight = defaultSwimViewHeight
		}
	}

	// --- Здоровье ---
	self.Health = sp.Health
	self.MaxHealth = sp.Health
	self.GibHealth = sp.GibHealth
	self.TakeDamage = domain.DamageAim
	self.DeadFlag = domain.DeadNo
	self.SvFlags |= domain.SvMonster
	self.SvFlags &^= domain.SvDeadMonster

	MonsterStand(c, self)
	// Стартовый кадр случайный, чтобы толпа не двигалась в такт
	if move := self.Monster.CurrentMove; move != nil {
		self.Frame = move.FirstFrame + c.Rng.Int()%(move.LastFrame-move.FirstFrame+1)
	}
	c.Level.TotalMonsters++
	c.World.LinkEntity(self)

	if sp.Locomotion == 0 {
		DropToFloor(c, self)
		if onGround(c, self) && !WalkMove(c, self, 0, 0) {
			log.WithField("origin", self.Origin).Warn("Monster in solid")
		}
	}

	startGo(c, self, log)

	self.Think = domain.ThinkMonster
	self.NextThink = c.Now() + domain.FrameTime
	c.Emit(domain.Event{Kind: domain.EventSpawn, Entity: self.ID, Origin: self.Origin})
	log.WithField("origin", self.Origin).Info("Monster spawned")
}

// startGo выбирает первую цель: маршрут по path_corner, точку боя или стойку.
func startGo(c *Context, self *domain.Entity, log *logrus.Entry) {
	mi := self.Monster
	if self.Health <= 0 {
		return
	}

	// target, указывающий на точки боя, на самом деле combattarget
	if self.Target != "" {
		notCombat, fixup := false, false
		for _, t := range c.Pool.FindByTargetName(self.Target) {
			if t.Kind == enums.KindCombatPoint {
				self.CombatTarget = self.Target
				fixup = true
			} else {
				notCombat = true
			}
		}
		if notCombat && self.CombatTarget != "" {
			log.WithField("target", self.Target).Warn("Target with mixed types")
		}
		if fixup {
			self.Target = ""
		}
	}

	if self.CombatTarget != "" {
		for _, t := range c.Pool.FindByTargetName(self.CombatTarget) {
			if t.Kind != enums.KindCombatPoint {
				log.WithFields(logrus.Fields{
					"combattarget": self.CombatTarget,
					"kind":         t.Kind,
				}).Warn("Combat target is not a combat point")
			}
		}
	}

	if self.Target == "" {
		mi.PauseTime = c.Now() + domain.LongPause
		MonsterStand(c, self)
		return
	}

	target := PickTarget(c, self.Target)
	switch {
	case target == nil:
		log.WithField("target", self.Target).Warn("Can't find target")
		self.Target = ""
		mi.PauseTime = c.Now() + domain.LongPause
		MonsterStand(c, self)
	case target.Kind == enums.KindPathCorner:
		self.GoalEntity = target.ID
		self.MoveTarget = target.ID
		self.IdealYaw = domain.VecToYaw(target.Origin.Sub(self.Origin))
		self.Angles[domain.Yaw] = self.IdealYaw
		MonsterWalk(c, self)
		self.Target = ""
	default:
		self.GoalEntity = types.NilEntityID
		self.MoveTarget = types.NilEntityID
		mi.PauseTime = c.Now() + domain.LongPause
		MonsterStand(c, self)
	}
}

// FreeEntity убирает сущность из мира и освобождает слот.
func FreeEntity(c *Context, e *domain.Entity) {
	c.World.UnlinkEntity(e)
	c.Pool.Free(e, c.Now())
}
