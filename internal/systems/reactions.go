package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// Реакции вида. Все виды описываются данными (таблицы и звуки),
// поэтому реакции общие: они только выбирают таблицу и звук из описания.

// painDebounce - пауза между реакциями на боль.
const painDebounce = 3

// hitscanRange - дальность мгновенного выстрела.
const hitscanRange = 8192

// Размеры трупа.
var (
	corpseMins = domain.Vec3{-16, -16, -24}
	corpseMaxs = domain.Vec3{16, 16, -8}
)

func species(self *domain.Entity) *domain.Species {
	if self.Monster == nil {
		return nil
	}
	return self.Monster.Species
}

// setMove меняет текущую таблицу. nil означает "у вида такой нет" и ничего не меняет.
func setMove(self *domain.Entity, move *domain.MoveTable) bool {
	if move == nil || self.Monster == nil {
		return false
	}
	self.Monster.CurrentMove = move
	return true
}

// MonsterStand - стойка.
func MonsterStand(c *Context, self *domain.Entity) {
	if sp := species(self); sp != nil {
		setMove(self, sp.Moves.Stand)
	}
}

// MonsterWalk - патруль; без таблицы ходьбы монстр стоит.
func MonsterWalk(c *Context, self *domain.Entity) {
	sp := species(self)
	if sp == nil {
		return
	}
	if !setMove(self, sp.Moves.Walk) {
		setMove(self, sp.Moves.Stand)
	}
}

// MonsterRun - бег, а при удержании позиции стойка.
func MonsterRun(c *Context, self *domain.Entity) {
	sp := species(self)
	if sp == nil {
		return
	}
	if self.Monster.AIFlags.Has(domain.AIStandGround) {
		setMove(self, sp.Moves.Stand)
		return
	}
	if !setMove(self, sp.Moves.Run) && !setMove(self, sp.Moves.Walk) {
		setMove(self, sp.Moves.Stand)
	}
}

// MonsterAttack - дальняя атака.
func MonsterAttack(c *Context, self *domain.Entity) {
	if sp := species(self); sp != nil {
		setMove(self, sp.Moves.Attack)
	}
}

// MonsterMelee - ближняя атака.
func MonsterMelee(c *Context, self *domain.Entity) {
	if sp := species(self); sp != nil {
		setMove(self, sp.Moves.Melee)
	}
}

// MonsterSight - монстр заметил врага.
func MonsterSight(c *Context, self, other *domain.Entity) {
	c.Emit(domain.Event{Kind: domain.EventSight, Entity: self.ID, Other: other.ID, Origin: self.Origin})
	if sp := species(self); sp != nil {
		c.Sound(self, domain.ChannelVoice, sp.Sounds.Sight)
	}
}

// MonsterIdle - звук скуки в стойке.
func MonsterIdle(c *Context, self *domain.Entity) {
	if sp := species(self); sp != nil {
		c.Sound(self, domain.ChannelVoice, sp.Sounds.Idle)
	}
}

// MonsterSearch - звук поиска в патруле.
func MonsterSearch(c *Context, self *domain.Entity) {
	if sp := species(self); sp != nil {
		c.Sound(self, domain.ChannelVoice, sp.Sounds.Search)
	}
}

// MonsterPain - реакция на урон, который не убил.
func MonsterPain(c *Context, self, other *domain.Entity, kick, damage int) {
	mi := self.Monster
	now := c.Now()
	if now < mi.PainDebounceTime {
		return
	}
	mi.PainDebounceTime = now + painDebounce

	c.Emit(domain.Event{Kind: domain.EventPain, Entity: self.ID, Other: other.ID, Origin: self.Origin, Damage: damage})
	sp := species(self)
	if sp == nil {
		return
	}
	c.Sound(self, domain.ChannelVoice, sp.Sounds.Pain)

	// На самом сложном без анимации боли
	if c.Skill == enums.DifficultyHardPlus {
		return
	}
	setMove(self, sp.Moves.Pain)
}

// MonsterDie - смерть монстра. damage - урон последнего удара.
func MonsterDie(c *Context, self, inflictor, attacker *domain.Entity, damage int, point domain.Vec3) {
	sp := species(self)

	// --- Разрывает на куски ---
	if self.Health <= self.GibHealth {
		if sp != nil {
			c.Sound(self, domain.ChannelVoice, sp.Sounds.Gib)
		}
		c.Emit(domain.Event{Kind: domain.EventGib, Entity: self.ID, Other: attacker.ID, Origin: self.Origin, Damage: damage})
		self.DeadFlag = domain.DeadDead
		self.TakeDamage = domain.DamageNo
		self.Solid = domain.SolidNot
		self.SvFlags |= domain.SvDeadMonster
		c.World.UnlinkEntity(self)
		self.Think = domain.ThinkFree
		self.NextThink = c.Now() + domain.FrameTime
		return
	}

	if self.DeadFlag == domain.DeadDead {
		return
	}

	// --- Обычная смерть ---
	self.DeadFlag = domain.DeadDead
	self.TakeDamage = domain.DamageYes
	c.Emit(domain.Event{Kind: domain.EventDeath, Entity: self.ID, Other: attacker.ID, Origin: self.Origin, Damage: damage})
	if sp == nil {
		monsterDead(c, self)
		return
	}
	c.Sound(self, domain.ChannelVoice, sp.Sounds.Death)
	if !setMove(self, sp.Moves.Death) {
		monsterDead(c, self)
	}
}

// monsterDead - конец анимации смерти: неосязаемый для живых труп.
func monsterDead(c *Context, self *domain.Entity) {
	self.Mins = corpseMins
	self.Maxs = corpseMaxs
	self.MoveType = enums.MoveTypeToss
	self.SvFlags |= domain.SvDeadMonster
	self.NextThink = 0
	c.World.LinkEntity(self)
}

// --- Действия кадров ---

func actionFootstep(c *Context, self *domain.Entity, t *Tick) {
	if sp := species(self); sp != nil {
		c.Sound(self, domain.ChannelBody, sp.Sounds.Step)
	}
}

func actionIdleSound(c *Context, self *domain.Entity, t *Tick) {
	MonsterIdle(c, self)
}

// actionMeleeHit - удар по врагу, если он рядом и перед монстром.
func actionMeleeHit(c *Context, self *domain.Entity, t *Tick) {
	sp := species(self)
	enemy := c.Entity(self.Enemy)
	if sp == nil || enemy == nil {
		return
	}
	c.Sound(self, domain.ChannelWeapon, sp.Sounds.Melee)
	c.Emit(domain.Event{Kind: domain.EventAttack, Entity: self.ID, Other: enemy.ID, Origin: self.Origin})
	if Range(self, enemy) != enums.RangeMelee || !InFront(self, enemy) {
		return
	}
	dir := enemy.Origin.Sub(self.Origin)
	Damage(c, enemy, self, self, dir, enemy.Origin, sp.MeleeDamage, sp.MeleeDamage)
}

// actionFire - мгновенный выстрел в сторону глаз врага с разбросом.
func actionFire(c *Context, self *domain.Entity, t *Tick) {
	sp := species(self)
	enemy := c.Entity(self.Enemy)
	if sp == nil || enemy == nil {
		return
	}

	start := self.EyePosition()
	aim := enemy.EyePosition()
	for i := range aim {
		aim[i] += c.Rng.CRandom() * sp.MissileSpread
	}
	dir, _ := aim.Sub(start).Normalize()
	c.Sound(self, domain.ChannelWeapon, sp.Sounds.Fire)
	FireHitscan(c, self, start, dir, sp.MissileDamage, sp.MissileDamage/2)
}

// FireHitscan - мгновенный выстрел из start по направлению dir.
// Урон получает первая задетая сущность, которая может его принять.
func FireHitscan(c *Context, self *domain.Entity, start, dir domain.Vec3, damage, kick int) domain.Trace {
	end := start.MA(hitscanRange, dir)

	var zero domain.Vec3
	tr := c.World.Trace(start, zero, zero, end, self.ID, domain.MaskShot)
	c.Emit(domain.Event{Kind: domain.EventAttack, Entity: self.ID, Other: tr.Ent, Origin: tr.EndPos})

	if hit := c.Entity(tr.Ent); hit != nil && hit.TakeDamage != domain.DamageNo {
		Damage(c, hit, self, self, dir, tr.EndPos, damage, kick)
	}
	return tr
}
