package systems

import "github.com/iiroka/netquake2-sub002/internal/domain"

// Таблицы диспетчеризации идентификаторов поведения.
// Заполняются в init: функции ссылаются друг на друга через MoveFrame,
// и статическая инициализация дала бы цикл.

type intentFunc func(c *Context, self *domain.Entity, t *Tick, dist float64)
type frameActionFunc func(c *Context, self *domain.Entity, t *Tick)
type endFunc func(c *Context, self *domain.Entity)
type thinkFunc func(c *Context, self *domain.Entity)
type touchFunc func(c *Context, self, other *domain.Entity)

var (
	intents      [domain.IntentCount]intentFunc
	frameActions [domain.FrameActionCount]frameActionFunc
	endFuncs     [domain.EndCount]endFunc
	thinkFuncs   [domain.ThinkCount]thinkFunc
	touchFuncs   [domain.TouchCount]touchFunc
)

func init() {
	intents[domain.IntentStand] = AIStand
	intents[domain.IntentWalk] = AIWalk
	intents[domain.IntentRun] = AIRun
	intents[domain.IntentCharge] = AICharge
	intents[domain.IntentMove] = AIMove
	intents[domain.IntentTurn] = AITurn

	frameActions[domain.FrameActionFootstep] = actionFootstep
	frameActions[domain.FrameActionIdleSound] = actionIdleSound
	frameActions[domain.FrameActionMeleeHit] = actionMeleeHit
	frameActions[domain.FrameActionFire] = actionFire

	endFuncs[domain.EndRun] = MonsterRun
	endFuncs[domain.EndStand] = MonsterStand
	endFuncs[domain.EndWalk] = MonsterWalk
	endFuncs[domain.EndDead] = monsterDead

	thinkFuncs[domain.ThinkMonster] = MonsterThink
	thinkFuncs[domain.ThinkFree] = FreeEntity

	touchFuncs[domain.TouchPathCorner] = pathCornerTouch
	touchFuncs[domain.TouchPointCombat] = pointCombatTouch
	touchFuncs[domain.TouchHurt] = hurtTouch
}
