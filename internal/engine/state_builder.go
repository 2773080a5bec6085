package engine

import (
	"strconv"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// idString - дескриптор в том же виде, что и в JSON сущностей.
func idString(id types.EntityID) string {
	if id.IsNil() {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// EventViews переводит события такта в DTO; индексы звуков становятся именами.
func (i *Instance) EventViews(events []domain.Event) []api.EventView {
	out := make([]api.EventView, 0, len(events))
	for _, ev := range events {
		view := api.EventView{
			Kind:    ev.Kind.String(),
			Frame:   ev.Frame,
			Entity:  idString(ev.Entity),
			Other:   idString(ev.Other),
			Origin:  ev.Origin,
			Channel: uint8(ev.Channel),
			Damage:  ev.Damage,
		}
		if ev.Sound != 0 {
			view.Sound = i.Species.SoundName(ev.Sound)
		}
		out = append(out, view)
	}
	return out
}

// EntityViews - снимок игроков и монстров.
func (i *Instance) EntityViews() []api.EntityView {
	var out []api.EntityView
	i.Pool.Each(func(e *domain.Entity) bool {
		if e.Kind != enums.KindPlayer && e.Kind != enums.KindMonster {
			return true
		}
		view := api.EntityView{
			ID:        idString(e.ID),
			Kind:      e.Kind.String(),
			ClassName: e.ClassName,
			Origin:    e.Origin,
			Yaw:       e.Angles[domain.Yaw],
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			Frame:     e.Frame,
			IsDead:    e.DeadFlag != domain.DeadNo || e.Health <= 0,
		}
		if e.Monster != nil {
			view.Move = e.Monster.MoveName()
			view.Enemy = idString(e.Enemy)
		}
		out = append(out, view)
		return true
	})
	return out
}

// LevelView - слоты восприятия и счётчики уровня.
func (i *Instance) LevelView() api.LevelView {
	lvl := i.Level
	return api.LevelView{
		Frame:          lvl.FrameNum,
		Time:           lvl.Time,
		SightClient:    idString(lvl.SightClient),
		SightEntity:    idString(lvl.SightEntity),
		SoundEntity:    idString(lvl.SoundEntity),
		Sound2Entity:   idString(lvl.Sound2Entity),
		TotalMonsters:  lvl.TotalMonsters,
		KilledMonsters: lvl.KilledMonsters,
		EntitiesInUse:  i.Pool.InUse(),
	}
}
