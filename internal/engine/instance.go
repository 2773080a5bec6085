package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/iiroka/netquake2-sub002/internal/collision"
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers/actions"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers/admin"
	"github.com/iiroka/netquake2-sub002/internal/species"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/iiroka/netquake2-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrUnknownAction - для команды не зарегистрирован хендлер.
var ErrUnknownAction = errors.New("unknown action")

// Instance представляет собой один изолированный запущенный уровень (арену).
// Все методы вызываются из одной горутины: симуляция однопоточная.
type Instance struct {
	ID  int
	Cfg Config

	Pool    *domain.Pool
	World   *collision.World
	Level   *domain.Level
	Ctx     *systems.Context
	Events  *domain.EventBuffer
	Species *species.Registry
	Layout  *dungeon.Layout

	Journal *domain.Journal // Лента внешних команд
	Logs    []api.LogEntry  // Локальные логи уровня

	players   map[string]types.EntityID // сессия -> игрок
	nextStart int
	handlers  map[domain.ActionType]handlers.HandlerFunc
	log       *logrus.Entry
}

// NewInstance строит мир из раскладки и расставляет сущности.
func NewInstance(id int, cfg Config, reg *species.Registry, layout *dungeon.Layout) (*Instance, error) {
	pool := domain.NewPool(cfg.MaxEntities, cfg.MaxClients)
	world := collision.NewWorld(pool, layout.Brushes)
	level := &domain.Level{}
	events := &domain.EventBuffer{}

	i := &Instance{
		ID:      id,
		Cfg:     cfg,
		Pool:    pool,
		World:   world,
		Level:   level,
		Events:  events,
		Species: reg,
		Layout:  layout,
		Ctx: &systems.Context{
			Pool:   pool,
			World:  world,
			Level:  level,
			Rng:    utils.NewRand(cfg.Seed),
			Skill:  cfg.Skill,
			Events: events,
			Coop:   cfg.MaxClients > 1,
		},
		Journal: &domain.Journal{
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
		},
		Logs:     []api.LogEntry{},
		players:  make(map[string]types.EntityID),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log:      logger.Component("instance").WithField("instance_id", id),
	}
	i.registerHandlers()

	if err := i.spawnLayout(); err != nil {
		return nil, err
	}
	i.log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"skill":    cfg.Skill,
		"monsters": level.TotalMonsters,
		"entities": pool.InUse(),
	}).Info("Instance ready")
	return i, nil
}

func (i *Instance) registerHandlers() {
	i.handlers[domain.ActionInit] = handlers.WithPayload(actions.HandleInit)
	i.handlers[domain.ActionMove] = handlers.RequireActor(handlers.WithPayload(actions.HandleMove))
	i.handlers[domain.ActionAttack] = handlers.RequireActor(handlers.WithPayload(actions.HandleAttack))
	i.handlers[domain.ActionNoise] = handlers.RequireActor(handlers.WithPayload(actions.HandleNoise))
	i.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	i.handlers[domain.ActionLeave] = handlers.RequireActor(handlers.WithEmptyPayload(actions.HandleLeave))

	if i.Cfg.Cheats {
		i.handlers[domain.ActionGod] = handlers.RequireActor(handlers.WithEmptyPayload(admin.HandleGod))
		i.handlers[domain.ActionNoTarget] = handlers.RequireActor(handlers.WithEmptyPayload(admin.HandleNoTarget))
		i.handlers[domain.ActionSpawn] = handlers.RequireActor(handlers.WithPayload(admin.HandleSpawn))
		i.handlers[domain.ActionKill] = handlers.RequireActor(handlers.WithPayload(admin.HandleKill))
	}
}

// --- ЦИКЛ КАДРА ---

// RunFrame продвигает уровень на один такт: слот взгляда, затем физика и
// think каждой сущности по порядку слотов. Возвращает ошибку только для
// неизвестного типа движения; остальной кадр в этом случае не выполняется.
func (i *Instance) RunFrame() error {
	c := i.Ctx
	i.Level.Advance()
	systems.SetSightClient(c)

	maxClients := i.Pool.MaxClients()
	for idx := 0; idx < i.Pool.Capacity(); idx++ {
		ent := i.Pool.At(idx)
		if !ent.InUse {
			continue
		}
		ent.OldOrigin = ent.Origin

		// Опора сдвинулась или исчезла: ищем пол заново
		if !ent.GroundEntity.IsNil() {
			ground := c.Entity(ent.GroundEntity)
			if ground == nil || ground.LinkCount != ent.GroundLinkCount {
				ent.GroundEntity = types.NilEntityID
				if ent.Locomotion() == 0 && ent.SvFlags.Has(domain.SvMonster) {
					systems.CheckGround(c, ent)
				}
			}
		}

		// Игроки двигаются только командами
		if idx > 0 && idx <= maxClients {
			continue
		}

		if err := i.runEntity(ent); err != nil {
			i.log.WithError(err).WithField("frame", i.Level.FrameNum).Error("Frame aborted")
			return err
		}
	}
	return nil
}

// --- КОМАНДЫ ---

// Apply выполняет команду сессии между тактами и пишет её в журнал.
func (i *Instance) Apply(cmd domain.InternalCommand) (handlers.Result, error) {
	handler, ok := i.handlers[cmd.Action]
	if !ok {
		return handlers.Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}
	i.recordCommand(cmd)

	ctx := handlers.Context{
		Sim:      i.Ctx,
		Players:  i,
		Monsters: i,
		Session:  cmd.Token,
		Actor:    i.Player(cmd.Token),
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.log.WithError(err).WithFields(logrus.Fields{
			"action":  cmd.Action,
			"session": cmd.Token,
		}).Warn("Command rejected")
		return result, err
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = handlers.MsgInfo
		}
		i.AddLog(result.Msg, msgType)
	}
	return result, nil
}

func (i *Instance) recordCommand(cmd domain.InternalCommand) {
	i.Journal.Entries = append(i.Journal.Entries, domain.JournalEntry{
		Frame:   i.Level.FrameNum,
		Token:   cmd.Token,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
	i.Journal.Frames = i.Level.FrameNum
}

// Player - игрок сессии или nil.
func (i *Instance) Player(session string) *domain.Entity {
	id, ok := i.players[session]
	if !ok {
		return nil
	}
	return i.Pool.Get(id)
}

// Sessions - число вошедших сессий.
func (i *Instance) Sessions() int {
	return len(i.players)
}
