package systems

import (
	"testing"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

// --- Урон и смерть ---

func TestDamageKillsMonsterOnce(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	m.Health = 10
	world := a.pool.World()

	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 15, 0)
	assert.Equal(t, -5, m.Health)
	assert.Equal(t, domain.DeadDead, m.DeadFlag)
	assert.Equal(t, 1, a.level.KilledMonsters)
	assert.Equal(t, "death", m.Monster.MoveName())
	assert.Equal(t, domain.TouchNone, m.Touch)

	deaths := 0
	for _, ev := range a.events.Events() {
		if ev.Kind == domain.EventDeath {
			deaths++
			assert.Equal(t, 15, ev.Damage)
			assert.Equal(t, m.ID, ev.Entity)
		}
	}
	assert.Equal(t, 1, deaths)

	// Добивание трупа не считается повторной смертью
	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 15, 0)
	assert.Equal(t, -20, m.Health)
	assert.Equal(t, 1, a.level.KilledMonsters)
	assert.Equal(t, 1, a.events.Count(domain.EventDeath))
	assert.Zero(t, a.events.Count(domain.EventGib))
}

func TestDamageGibsAndFrees(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	id := m.ID
	world := a.pool.World()

	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 5000, 0)
	assert.Equal(t, minHealth, m.Health)
	assert.Equal(t, 1, a.events.Count(domain.EventGib))
	assert.Zero(t, a.events.Count(domain.EventDeath))
	assert.Equal(t, domain.SolidNot, m.Solid)
	assert.Equal(t, domain.ThinkFree, m.Think)

	a.setFrame(1)
	RunThink(a.ctx, m)
	assert.Nil(t, a.ctx.Entity(id))
}

func TestDeathAnimationLeavesCorpse(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	world := a.pool.World()
	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 25, 0)
	require.Equal(t, "death", m.Monster.MoveName())

	var tick Tick
	for i := 0; i < 10 && !m.SvFlags.Has(domain.SvDeadMonster); i++ {
		MoveFrame(a.ctx, m, &tick)
	}
	assert.True(t, m.SvFlags.Has(domain.SvDeadMonster))
	assert.Equal(t, corpseMaxs, m.Maxs)
	assert.Equal(t, enums.MoveTypeToss, m.MoveType)

	// Живые проходят сквозь труп
	tr := a.world.Trace(domain.Vec3{-100, 0, standZ}, playerMins, playerMaxs, domain.Vec3{100, 0, standZ}, types.NilEntityID, domain.MaskPlayerSolid)
	assert.Equal(t, 1.0, tr.Fraction)
}

func TestDamageSurpriseBonusAndReaction(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{-400, 0, standZ})

	Damage(a.ctx, m, p, p, domain.Vec3{1, 0, 0}, m.Origin, 5, 0)
	assert.Equal(t, 10, m.Health, "unaware monsters take double damage")
	assert.Equal(t, p.ID, m.Enemy)
	assert.Equal(t, p.ID, m.GoalEntity)
	assert.Equal(t, "pain", m.Monster.MoveName())
	assert.Equal(t, 1, a.events.Count(domain.EventPain))

	// Второй удар в том же такте: враг уже есть, боль ещё не прошла
	Damage(a.ctx, m, p, p, domain.Vec3{1, 0, 0}, m.Origin, 5, 0)
	assert.Equal(t, 5, m.Health)
	assert.Equal(t, 1, a.events.Count(domain.EventPain))
	assert.Equal(t, 2, a.events.Count(domain.EventDamage))
}

func TestDamageHardPlusSkipsPainAnimation(t *testing.T) {
	a := newArena()
	a.ctx.Skill = enums.DifficultyHardPlus
	m := a.monster(t, domain.Vec3{0, 0, 30})
	world := a.pool.World()

	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 5, 0)
	assert.Equal(t, "stand", m.Monster.MoveName())
	assert.InDelta(t, 5.0, m.Monster.PainDebounceTime, 1e-9)
	assert.Equal(t, 1, a.events.Count(domain.EventPain))
}

func TestDamageKnockback(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	world := a.pool.World()

	Damage(a.ctx, m, world, world, domain.Vec3{2, 0, 0}, m.Origin, 1, 10)
	assert.InDelta(t, 25.0, m.Velocity[0], 1e-9)

	m.Flags |= domain.FlagNoKnockback
	Damage(a.ctx, m, world, world, domain.Vec3{2, 0, 0}, m.Origin, 1, 10)
	assert.InDelta(t, 25.0, m.Velocity[0], 1e-9)
}

func TestDamagePlayer(t *testing.T) {
	tests := []struct {
		name       string
		skill      enums.Difficulty
		armor      int
		god        bool
		damage     int
		wantHealth int
		wantArmor  int
	}{
		{name: "plain", skill: enums.DifficultyMedium, damage: 20, wantHealth: 80},
		{name: "armor", skill: enums.DifficultyMedium, armor: 10, damage: 20, wantHealth: 86, wantArmor: 4},
		{name: "armor runs out", skill: enums.DifficultyMedium, armor: 2, damage: 20, wantHealth: 82},
		{name: "easy halves", skill: enums.DifficultyEasy, damage: 5, wantHealth: 98},
		{name: "easy floor is one", skill: enums.DifficultyEasy, damage: 1, wantHealth: 99},
		{name: "god mode", skill: enums.DifficultyMedium, god: true, damage: 50, wantHealth: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena()
			a.ctx.Skill = tt.skill
			p := a.player(t, domain.Vec3{0, 0, standZ})
			p.Client.Armor = tt.armor
			if tt.god {
				p.Flags |= domain.FlagGodMode
			}
			world := a.pool.World()

			Damage(a.ctx, p, world, world, domain.Vec3{}, p.Origin, tt.damage, 0)
			assert.Equal(t, tt.wantHealth, p.Health)
			assert.Equal(t, tt.wantArmor, p.Client.Armor)
			if tt.god {
				assert.Zero(t, a.events.Count(domain.EventDamage))
			}
		})
	}
}

func TestDamagePlayerDies(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{0, 0, standZ})
	m := a.monster(t, domain.Vec3{200, 0, 30})

	Damage(a.ctx, p, m, m, domain.Vec3{}, p.Origin, 150, 0)
	assert.Equal(t, domain.DeadDead, p.DeadFlag)
	assert.Equal(t, domain.DamageNo, p.TakeDamage)
	assert.Equal(t, m.ID, p.Enemy)
	assert.Equal(t, 1, a.events.Count(domain.EventDeath))
	assert.Zero(t, a.level.KilledMonsters)
}

func TestDamageIgnoresUntouchable(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	m.TakeDamage = domain.DamageNo
	Damage(a.ctx, m, nil, nil, domain.Vec3{}, m.Origin, 50, 0)
	assert.Equal(t, 20, m.Health)
	assert.Zero(t, a.events.Count(domain.EventDamage))
}

func TestKilledGoodGuyNotCounted(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	m.Monster.AIFlags |= domain.AIGoodGuy
	world := a.pool.World()

	Damage(a.ctx, m, world, world, domain.Vec3{}, m.Origin, 100, 0)
	assert.Zero(t, a.level.KilledMonsters)
	assert.Equal(t, domain.DeadDead, m.DeadFlag)
}

// --- Кого бить в ответ ---

func TestReactToDamage(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{-1500, 0, standZ})
	m := a.monster(t, domain.Vec3{0, 0, 30})
	kin := a.monster(t, domain.Vec3{100, 0, 30})
	other := a.monster(t, domain.Vec3{0, 100, 30})
	other.ClassName = "monster_brute"

	// Собрат промахнулся: злимся на его врага
	kin.Enemy = p.ID
	ReactToDamage(a.ctx, m, kin)
	assert.Equal(t, p.ID, m.Enemy)

	// Чужой вид: драка, прежний враг-игрок запоминается
	ReactToDamage(a.ctx, m, other)
	assert.Equal(t, other.ID, m.Enemy)
	assert.Equal(t, p.ID, m.OldEnemy)

	// Неразборчивый стрелок драки не провоцирует
	m2 := a.monster(t, domain.Vec3{0, -100, 30})
	other.Monster.Species = &domain.Species{Name: "gunner", Indiscriminate: true}
	ReactToDamage(a.ctx, m2, other)
	assert.True(t, m2.Enemy.IsNil())

	// Удар по себе не в счёт
	ReactToDamage(a.ctx, m, m)
	assert.Equal(t, other.ID, m.Enemy)
}

func TestReactToDamageGoodGuyIgnoresPlayers(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{-400, 0, standZ})
	m := a.monster(t, domain.Vec3{0, 0, 30})
	m.Monster.AIFlags |= domain.AIGoodGuy

	ReactToDamage(a.ctx, m, p)
	assert.True(t, m.Enemy.IsNil())
}

// --- Решение об атаке ---

func TestMonsterCheckAttackMelee(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{60, 0, standZ})
	m.Enemy = p.ID

	tick := &Tick{EnemyRange: enums.RangeMelee, EnemyVis: true}
	require.True(t, MonsterCheckAttack(a.ctx, m, tick))
	assert.Equal(t, enums.AttackMelee, m.Monster.AttackState)

	// Вид без ближнего боя стреляет в упор
	m.Monster.AttackState = enums.AttackStraight
	m.Monster.Species.Moves.Melee = nil
	require.True(t, MonsterCheckAttack(a.ctx, m, tick))
	assert.Equal(t, enums.AttackMissile, m.Monster.AttackState)

	// На лёгком удар случается в четверти тактов
	a.ctx.Skill = enums.DifficultyEasy
	a.ctx.Rng = &fixedRand{i: 1}
	m.Monster.AttackState = enums.AttackStraight
	assert.False(t, MonsterCheckAttack(a.ctx, m, tick))
	assert.Equal(t, enums.AttackStraight, m.Monster.AttackState)
}

func TestMonsterCheckAttackMissileChance(t *testing.T) {
	tests := []struct {
		name   string
		skill  enums.Difficulty
		dist   float64
		stand  bool
		roll   float64
		attack bool
	}{
		{name: "near hit", skill: enums.DifficultyMedium, dist: 300, roll: 0.09, attack: true},
		{name: "near miss", skill: enums.DifficultyMedium, dist: 300, roll: 0.11},
		{name: "mid hit", skill: enums.DifficultyMedium, dist: 700, roll: 0.019, attack: true},
		{name: "mid miss", skill: enums.DifficultyMedium, dist: 700, roll: 0.021},
		{name: "stand ground", skill: enums.DifficultyMedium, dist: 700, stand: true, roll: 0.39, attack: true},
		{name: "easy halves", skill: enums.DifficultyEasy, dist: 300, roll: 0.06},
		{name: "hard keeps", skill: enums.DifficultyHard, dist: 300, roll: 0.11},
		{name: "hardplus doubles", skill: enums.DifficultyHardPlus, dist: 300, roll: 0.19, attack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena()
			a.ctx.Skill = tt.skill
			m := a.monster(t, domain.Vec3{0, 0, 30})
			p := a.player(t, domain.Vec3{tt.dist, 0, standZ})
			m.Enemy = p.ID
			if tt.stand {
				m.Monster.AIFlags |= domain.AIStandGround
			}
			a.ctx.Rng = &fixedRand{f: tt.roll}

			tick := &Tick{EnemyVis: true, EnemyRange: Range(m, p)}
			got := MonsterCheckAttack(a.ctx, m, tick)
			assert.Equal(t, tt.attack, got)
			if tt.attack {
				assert.Equal(t, enums.AttackMissile, m.Monster.AttackState)
				assert.InDelta(t, 2*tt.roll, m.Monster.AttackFinished, 1e-9)
			} else {
				assert.NotEqual(t, enums.AttackMissile, m.Monster.AttackState)
			}
		})
	}
}

func TestMonsterCheckAttackWaitsForCooldown(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{300, 0, standZ})
	m.Enemy = p.ID
	m.Monster.AttackFinished = 1
	a.ctx.Rng = &fixedRand{f: 0}

	assert.False(t, MonsterCheckAttack(a.ctx, m, &Tick{EnemyVis: true, EnemyRange: enums.RangeNear}))
}

func TestMonsterCheckAttackObstructedNeverCommits(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{300, 0, standZ})
	m.Enemy = p.ID
	blocker := a.monster(t, domain.Vec3{150, 0, 30})

	collider := mocks.NewMockCollider(ctrl)
	collider.EXPECT().
		Trace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), m.ID, domain.MaskClearShot).
		Return(domain.Trace{Fraction: 0.5, Ent: blocker.ID}).
		AnyTimes()
	a.ctx.World = collider

	skills := []enums.Difficulty{enums.DifficultyEasy, enums.DifficultyMedium, enums.DifficultyHard, enums.DifficultyHardPlus}
	rapid.Check(t, func(rt *rapid.T) {
		a.ctx.Skill = skills[rapid.IntRange(0, len(skills)-1).Draw(rt, "skill")]
		a.ctx.Rng = &fixedRand{
			f: rapid.Float64Range(0, 0.999).Draw(rt, "roll"),
			i: rapid.IntRange(0, 1000).Draw(rt, "int"),
		}
		m.Monster.AttackState = enums.AttackStraight
		m.Monster.AttackFinished = 0
		if rapid.Bool().Draw(rt, "stand") {
			m.Monster.AIFlags |= domain.AIStandGround
		} else {
			m.Monster.AIFlags &^= domain.AIStandGround
		}
		tick := &Tick{
			EnemyVis:   true,
			EnemyRange: enums.Range(rapid.IntRange(0, int(enums.RangeFar)).Draw(rt, "range")),
		}

		if MonsterCheckAttack(a.ctx, m, tick) {
			rt.Fatalf("committed to an attack through %v", blocker.ID)
		}
		if s := m.Monster.AttackState; s == enums.AttackMissile || s == enums.AttackMelee {
			rt.Fatalf("attack state %v", s)
		}
	})
}

// Решение атаковать, принятое в прошлом такте, доигрывается без новой
// проверки линии огня: стена, выросшая между тактами, его не отменяет.
func TestCheckAttackHonoursCommittedAttack(t *testing.T) {
	for _, state := range []enums.AttackState{enums.AttackMissile, enums.AttackMelee} {
		t.Run(state.String(), func(t *testing.T) {
			a := newArena(fullWall)
			m := a.monster(t, domain.Vec3{0, 0, 30})
			m.Angles[domain.Yaw] = 0
			p := a.player(t, domain.Vec3{300, 0, standZ})
			m.Enemy = p.ID
			m.Monster.AttackState = state

			var tick Tick
			assert.True(t, CheckAttack(a.ctx, m, &tick))
			assert.False(t, tick.EnemyVis)
			assert.Equal(t, enums.AttackStraight, m.Monster.AttackState)
		})
	}

	// Без такого решения та же стена атаку не допускает
	a := newArena(fullWall)
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{300, 0, standZ})
	m.Enemy = p.ID
	m.Monster.AttackState = enums.AttackStraight

	var tick Tick
	assert.False(t, CheckAttack(a.ctx, m, &tick))
	assert.Equal(t, enums.AttackStraight, m.Monster.AttackState)
}

func TestCheckAttackEnemyGone(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{300, 0, standZ})
	m.Enemy = p.ID
	HuntTarget(a.ctx, m)
	p.Health = 0

	var tick Tick
	assert.True(t, CheckAttack(a.ctx, m, &tick))
	assert.True(t, m.Enemy.IsNil())
	assert.Equal(t, "stand", m.Monster.MoveName())
	assert.Greater(t, m.Monster.PauseTime, float64(domain.LongPause)-1)
}

func TestCheckAttackFallsBackToOldEnemy(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	p := a.player(t, domain.Vec3{300, 0, standZ})
	other := a.monster(t, domain.Vec3{-300, 0, 30})
	m.Enemy = other.ID
	m.OldEnemy = p.ID
	other.Health = 0

	var tick Tick
	CheckAttack(a.ctx, m, &tick)
	assert.Equal(t, p.ID, m.Enemy)
	assert.True(t, m.OldEnemy.IsNil())
	assert.Equal(t, p.ID, m.GoalEntity)
	assert.True(t, tick.EnemyVis)
	assert.Equal(t, enums.RangeNear, tick.EnemyRange)
}

func TestCheckAttackFillsTick(t *testing.T) {
	a := newArena()
	m := a.monster(t, domain.Vec3{0, 0, 30})
	m.Angles[domain.Yaw] = 0
	p := a.player(t, domain.Vec3{0, 700, standZ})
	m.Enemy = p.ID
	a.setFrame(30)
	a.ctx.Rng = &fixedRand{f: 0.99}

	var tick Tick
	assert.False(t, CheckAttack(a.ctx, m, &tick))
	assert.True(t, tick.EnemyVis)
	assert.False(t, tick.EnemyInfront)
	assert.Equal(t, enums.RangeMid, tick.EnemyRange)
	assert.InDelta(t, 90.0, tick.EnemyYaw, 1e-9)
	assert.InDelta(t, 3.0, m.Monster.SearchTime, 1e-9)
	assert.Equal(t, p.Origin, m.Monster.LastSighting)
}
