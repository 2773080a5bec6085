package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/iiroka/netquake2-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Context - всё, с чем работает ИИ в течение такта: пул, мир столкновений,
// состояние уровня, генератор случайных чисел, сложность и получатель событий.
// Один Context на инстанс; симуляция однопоточная.
type Context struct {
	Pool   *domain.Pool
	World  domain.Collider
	Level  *domain.Level
	Rng    utils.Rand
	Skill  enums.Difficulty
	Events domain.EventSink
	Coop   bool
}

// Tick - сведения о враге, собранные CheckAttack в текущем такте.
// Живёт ровно один вызов think одного монстра и никогда не переходит к другому.
type Tick struct {
	EnemyVis     bool
	EnemyInfront bool
	EnemyRange   enums.Range
	EnemyYaw     float64
}

// Now - текущее время уровня.
func (c *Context) Now() float64 {
	return c.Level.Time
}

// Entity разыменовывает дескриптор; nil для пустых и устаревших ссылок.
func (c *Context) Entity(id types.EntityID) *domain.Entity {
	return c.Pool.Get(id)
}

// Emit отправляет событие, проставив номер кадра.
func (c *Context) Emit(ev domain.Event) {
	if c.Events == nil {
		return
	}
	ev.Frame = c.Level.FrameNum
	c.Events.Emit(ev)
}

// Sound - звук от сущности. Нулевой индекс означает "звука нет".
func (c *Context) Sound(e *domain.Entity, ch domain.SoundChannel, snd domain.SoundIndex) {
	if snd == 0 {
		return
	}
	c.Emit(domain.Event{
		Kind:    domain.EventSound,
		Entity:  e.ID,
		Origin:  e.Origin,
		Sound:   snd,
		Channel: ch,
	})
}

// aiLogger - логгер решений конкретного монстра.
func aiLogger(self *domain.Entity) *logrus.Entry {
	return logger.Component("ai").WithFields(logrus.Fields{
		"entity": self.ID,
		"class":  self.ClassName,
	})
}

func debugEnabled() bool {
	return logger.Log != nil && logger.Log.IsLevelEnabled(logrus.DebugLevel)
}
