package systems

import (
	"math"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Пол здоровья после смерти.
const minHealth = -999

// armorProtection - доля урона, которую забирает броня игрока.
const armorProtection = 0.3

// --- Решение об атаке ---

// CheckAttack - ai_checkattack: обновляет сведения о враге в t и решает,
// занят ли такт атакой. true означает, что движение в этом такте не нужно.
func CheckAttack(c *Context, self *domain.Entity, t *Tick) bool {
	mi := self.Monster
	enemy := c.Entity(self.Enemy)

	// К точке боя бежим не стреляя
	if !self.GoalEntity.IsNil() {
		if mi.AIFlags.Has(domain.AICombatPoint) {
			return false
		}
		if mi.AIFlags.Has(domain.AISoundTarget) && enemy != nil {
			if c.Now()-enemy.NoiseTime > 5 {
				// Звук устарел и так и не подтвердился
				if self.GoalEntity == self.Enemy {
					self.GoalEntity = types.NilEntityID
					if c.Entity(self.MoveTarget) != nil {
						self.GoalEntity = self.MoveTarget
					}
				}
				mi.AIFlags &^= domain.AISoundTarget
				if mi.AIFlags.Has(domain.AITempStandGround) {
					mi.AIFlags &^= domain.AIStandGround | domain.AITempStandGround
				}
			} else {
				self.ShowHostile = c.Now() + 1
				return false
			}
		}
	}

	t.EnemyVis = false

	// --- Враг жив? ---
	if enemy == nil || enemy.Health <= 0 {
		self.Enemy = types.NilEntityID
		if old := c.Entity(self.OldEnemy); old != nil && old.Health > 0 {
			self.Enemy = old.ID
			self.OldEnemy = types.NilEntityID
			HuntTarget(c, self)
			enemy = old
		} else {
			if c.Entity(self.MoveTarget) != nil {
				self.GoalEntity = self.MoveTarget
				MonsterWalk(c, self)
			} else {
				// Без паузы стойка сразу вернётся к ходьбе без цели
				mi.PauseTime = c.Now() + domain.LongPause
				MonsterStand(c, self)
			}
			return true
		}
	}

	// Будим остальных
	self.ShowHostile = c.Now() + 1

	t.EnemyVis = Visible(c, self, enemy)
	if t.EnemyVis {
		mi.SearchTime = c.Now()
		mi.LastSighting = enemy.Origin
	}
	t.EnemyInfront = InFront(self, enemy)
	t.EnemyRange = Range(self, enemy)
	t.EnemyYaw = domain.VecToYaw(enemy.Origin.Sub(self.Origin))

	switch mi.AttackState {
	case enums.AttackMissile:
		aiRunMissile(c, self, t)
		return true
	case enums.AttackMelee:
		aiRunMelee(c, self, t)
		return true
	}

	// Не видим - не атакуем
	if !t.EnemyVis {
		return false
	}
	return MonsterCheckAttack(c, self, t)
}

// MonsterCheckAttack - M_CheckAttack: ближний бой или бросок на выстрел.
func MonsterCheckAttack(c *Context, self *domain.Entity, t *Tick) bool {
	mi := self.Monster
	enemy := c.Entity(self.Enemy)
	if enemy == nil {
		return false
	}

	if enemy.Health > 0 {
		// Есть ли что-то на линии огня
		var zero domain.Vec3
		tr := c.World.Trace(self.EyePosition(), zero, zero, enemy.EyePosition(), self.ID, domain.MaskClearShot)
		if tr.Ent != enemy.ID {
			return false
		}
	}

	species := mi.Species

	// --- Ближний бой ---
	if t.EnemyRange == enums.RangeMelee {
		// На лёгком не всегда бьём
		if c.Skill == enums.DifficultyEasy && c.Rng.Int()&3 != 0 {
			return false
		}
		if species != nil && species.HasMelee() {
			mi.AttackState = enums.AttackMelee
		} else {
			mi.AttackState = enums.AttackMissile
		}
		return true
	}

	// --- Дальняя атака ---
	if species == nil || !species.HasMissile() {
		return false
	}
	if c.Now() < mi.AttackFinished {
		return false
	}
	if t.EnemyRange == enums.RangeFar {
		return false
	}

	var chance float64
	switch {
	case mi.AIFlags.Has(domain.AIStandGround):
		chance = 0.4
	case t.EnemyRange == enums.RangeMelee:
		chance = 0.2
	case t.EnemyRange == enums.RangeNear:
		chance = 0.1
	case t.EnemyRange == enums.RangeMid:
		chance = 0.02
	default:
		return false
	}
	switch c.Skill {
	case enums.DifficultyEasy:
		chance *= 0.5
	case enums.DifficultyHardPlus:
		chance *= 2
	}

	if c.Rng.Float() < chance {
		mi.AttackState = enums.AttackMissile
		mi.AttackFinished = c.Now() + 2*c.Rng.Float()
		return true
	}

	if self.Flags.Has(domain.FlagFly) {
		if c.Rng.Float() < 0.3 {
			mi.AttackState = enums.AttackSliding
		} else {
			mi.AttackState = enums.AttackStraight
		}
	}
	return false
}

// --- Урон ---

// Damage - T_Damage: применяет урон к targ. inflictor - чем ударили,
// attacker - кто отвечает за удар. dir может быть нулевым.
func Damage(c *Context, targ, inflictor, attacker *domain.Entity, dir, point domain.Vec3, damage, knockback int) {
	if targ == nil || !targ.InUse || targ.TakeDamage == domain.DamageNo {
		return
	}
	if attacker == nil {
		attacker = c.Pool.World()
	}
	if inflictor == nil {
		inflictor = attacker
	}

	// На лёгком игроки получают вполовину меньше
	if c.Skill == enums.DifficultyEasy && targ.IsClient() {
		damage /= 2
		if damage == 0 {
			damage = 1
		}
	}

	dir, _ = dir.Normalize()

	// Застали монстра врасплох
	if targ.SvFlags.Has(domain.SvMonster) && attacker.IsClient() && targ.Enemy.IsNil() && targ.Health > 0 {
		damage *= 2
	}

	if targ.Flags.Has(domain.FlagNoKnockback) {
		knockback = 0
	}

	// --- Отбрасывание ---
	if knockback != 0 && targ.MoveType != enums.MoveTypeNone && targ.MoveType != enums.MoveTypeBounce {
		mass := math.Max(float64(targ.Mass), 50)
		targ.Velocity = targ.Velocity.MA(500*float64(knockback)/mass, dir)
	}

	take := damage
	if targ.Flags.Has(domain.FlagGodMode) {
		take = 0
	} else if targ.Client != nil {
		take -= armorSave(targ.Client, take)
	}

	if take != 0 {
		c.Emit(domain.Event{
			Kind:   domain.EventDamage,
			Entity: targ.ID,
			Other:  attacker.ID,
			Origin: point,
			Damage: take,
		})
		targ.Health -= take
		if targ.Health <= 0 {
			if targ.SvFlags.Has(domain.SvMonster) || targ.IsClient() {
				targ.Flags |= domain.FlagNoKnockback
			}
			Killed(c, targ, inflictor, attacker, take, point)
			return
		}
	}

	if targ.SvFlags.Has(domain.SvMonster) {
		ReactToDamage(c, targ, attacker)
		if take != 0 {
			MonsterPain(c, targ, attacker, knockback, take)
			// На самом сложном монстры редко уходят в анимацию боли
			if c.Skill == enums.DifficultyHardPlus {
				targ.Monster.PainDebounceTime = c.Now() + 5
			}
		}
	} else if targ.IsClient() && take != 0 {
		c.Emit(domain.Event{Kind: domain.EventPain, Entity: targ.ID, Other: attacker.ID, Damage: take})
	}
}

// armorSave - сколько урона забирает броня; броня при этом тратится.
func armorSave(cl *domain.ClientInfo, damage int) int {
	if cl.Armor <= 0 || damage <= 0 {
		return 0
	}
	save := int(math.Ceil(armorProtection * float64(damage)))
	if save > cl.Armor {
		save = cl.Armor
	}
	cl.Armor -= save
	return save
}

// Killed - сущность получила смертельный урон.
// damage - урон удара, убившего цель, до ограничения здоровья снизу.
func Killed(c *Context, targ, inflictor, attacker *domain.Entity, damage int, point domain.Vec3) {
	if targ.Health < minHealth {
		targ.Health = minHealth
	}
	targ.Enemy = attacker.ID

	if targ.SvFlags.Has(domain.SvMonster) && targ.DeadFlag != domain.DeadDead {
		if targ.Monster != nil && !targ.Monster.AIFlags.Has(domain.AIGoodGuy) {
			c.Level.KilledMonsters++
			if c.Coop && attacker.Client != nil {
				attacker.Client.Score++
			}
		}
		targ.Touch = domain.TouchNone
		logger.Component("combat").WithFields(logrus.Fields{
			"target":   targ.ID,
			"class":    targ.ClassName,
			"attacker": attacker.ID,
			"damage":   damage,
		}).Info("Monster killed")
	}

	if targ.SvFlags.Has(domain.SvMonster) {
		MonsterDie(c, targ, inflictor, attacker, damage, point)
		return
	}
	if targ.IsClient() {
		playerDie(c, targ, attacker, damage)
	}
}

// playerDie - игрок превращается в неподвижный труп до переподключения.
func playerDie(c *Context, self, attacker *domain.Entity, damage int) {
	if self.DeadFlag == domain.DeadDead {
		return
	}
	self.DeadFlag = domain.DeadDead
	self.TakeDamage = domain.DamageNo
	self.SvFlags |= domain.SvDeadMonster
	self.Maxs[2] = -8
	c.World.LinkEntity(self)
	c.Emit(domain.Event{
		Kind:   domain.EventDeath,
		Entity: self.ID,
		Other:  attacker.ID,
		Origin: self.Origin,
		Damage: damage,
	})
}

// ReactToDamage - на кого злиться после попадания.
func ReactToDamage(c *Context, targ, attacker *domain.Entity) {
	if !attacker.IsClient() && !attacker.SvFlags.Has(domain.SvMonster) {
		return
	}
	if attacker.ID == targ.ID || attacker.ID == targ.Enemy {
		return
	}
	mi := targ.Monster

	// Хорошие парни не злятся на игроков и друг на друга
	if mi.AIFlags.Has(domain.AIGoodGuy) {
		if attacker.IsClient() || (attacker.Monster != nil && attacker.Monster.AIFlags.Has(domain.AIGoodGuy)) {
			return
		}
	}

	current := c.Entity(targ.Enemy)
	keepOld := func() {
		if current != nil && current.IsClient() {
			targ.OldEnemy = current.ID
		}
	}

	// --- Стрелял игрок ---
	if attacker.IsClient() {
		mi.AIFlags &^= domain.AISoundTarget
		// Два игрока (кооператив): переключаемся, только если текущего не видно
		if current != nil && current.IsClient() {
			if Visible(c, targ, current) {
				targ.OldEnemy = attacker.ID
				return
			}
			targ.OldEnemy = current.ID
		}
		targ.Enemy = attacker.ID
		FoundTarget(c, targ)
		return
	}

	switch {
	// Другой вид с тем же способом передвижения: драка
	case targ.Locomotion() == attacker.Locomotion() &&
		targ.ClassName != attacker.ClassName &&
		!indiscriminate(attacker):
		keepOld()
		targ.Enemy = attacker.ID
	// В нас целились: отвечаем
	case attacker.Enemy == targ.ID:
		keepOld()
		targ.Enemy = attacker.ID
	// Иначе помогаем собрату, если он злится не на нас
	case c.Entity(attacker.Enemy) != nil:
		keepOld()
		targ.Enemy = attacker.Enemy
	default:
		return
	}
	FoundTarget(c, targ)
}

func indiscriminate(e *domain.Entity) bool {
	return e.Monster != nil && e.Monster.Species != nil && e.Monster.Species.Indiscriminate
}
