package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// MoveFrame продвигает текущую таблицу монстра на один кадр и вызывает
// функции кадра: намерение с расстоянием, затем действие.
func MoveFrame(c *Context, self *domain.Entity, t *Tick) {
	mi := self.Monster
	if mi == nil || mi.CurrentMove == nil {
		return
	}
	move := mi.CurrentMove
	self.NextThink = c.Now() + domain.FrameTime

	if next, ok := mi.NextFrame(); ok && move.Contains(next) {
		if self.Frame != next {
			self.Frame = next
			mi.AIFlags &^= domain.AIHoldFrame
		}
		mi.ClearNextFrame()
	} else {
		// Заказ вне таблицы не снимается: его применит таблица, где этот кадр есть
		if self.Frame == move.LastFrame && move.End != domain.EndNone {
			if fn := endFuncs[move.End]; fn != nil {
				fn(c, self)
			}
			// Функция конца почти всегда меняет таблицу
			move = mi.CurrentMove
			if move == nil || self.SvFlags.Has(domain.SvDeadMonster) {
				return
			}
		}

		if !move.Contains(self.Frame) {
			mi.AIFlags &^= domain.AIHoldFrame
			self.Frame = move.FirstFrame
		} else if !mi.AIFlags.Has(domain.AIHoldFrame) {
			self.Frame++
			if self.Frame > move.LastFrame {
				self.Frame = move.FirstFrame
			}
		}
	}

	frame := move.FrameAt(self.Frame)
	if frame.Intent != domain.IntentNone {
		if fn := intents[frame.Intent]; fn != nil {
			if mi.AIFlags.Has(domain.AIHoldFrame) {
				fn(c, self, t, 0)
			} else {
				fn(c, self, t, frame.Dist*mi.Scale)
			}
		}
	}
	// Действие берётся из таблицы, в которой кадр был выбран
	if frame.Action != domain.FrameActionNone {
		if fn := frameActions[frame.Action]; fn != nil && self.InUse {
			fn(c, self, t)
		}
	}
}

// MonsterThink - think монстра: кадр анимации, затем земля и вода.
func MonsterThink(c *Context, self *domain.Entity) {
	var t Tick
	MoveFrame(c, self, &t)
	if !self.InUse {
		return
	}
	if self.LinkCount != self.Monster.LinkCount {
		self.Monster.LinkCount = self.LinkCount
		CheckGround(c, self)
	}
	CategorizePosition(c, self)
}

// RunThink вызывает think сущности, если подошло время.
func RunThink(c *Context, ent *domain.Entity) {
	thinktime := ent.NextThink
	if thinktime <= 0 || thinktime > c.Now()+0.001 {
		return
	}
	ent.NextThink = 0
	fn := thinkFuncs[ent.Think]
	if fn == nil {
		aiLogger(ent).WithFields(logrus.Fields{"think": ent.Think}).Warn("Scheduled think without a function")
		return
	}
	fn(c, ent)
}

// TouchTriggers сообщает триггерам, которых касается ent.
// Мёртвые триггеры не задевают.
func TouchTriggers(c *Context, ent *domain.Entity) {
	if (ent.IsClient() || ent.SvFlags.Has(domain.SvMonster)) && ent.Health <= 0 {
		return
	}
	for _, hit := range c.World.AreaEntities(ent.AbsMin, ent.AbsMax, domain.SolidTrigger) {
		if !hit.InUse || hit.Touch == domain.TouchNone {
			continue
		}
		if fn := touchFuncs[hit.Touch]; fn != nil {
			fn(c, hit, ent)
		}
	}
}
