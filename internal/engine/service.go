package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/network"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull = errors.New("command queue is full")
	ErrStopped   = errors.New("service stopped")
)

const commandQueueSize = 256

// Snapshot - копия состояния для отладочных эндпоинтов.
// Собирается в горутине симуляции после каждого такта.
type Snapshot struct {
	Level    api.LevelView    `json:"level"`
	Entities []api.EntityView `json:"entities"`
}

// GameService крутит такты инстанса и связывает его с внешним миром.
// Внешние горутины общаются с симуляцией только через CommandChan.
type GameService struct {
	Instance    *Instance
	Hub         *network.Broadcaster
	CommandChan chan domain.InternalCommand

	tick time.Duration
	done chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot

	log *logrus.Entry
}

func NewService(inst *Instance) *GameService {
	s := &GameService{
		Instance:    inst,
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, commandQueueSize),
		tick:        inst.Cfg.Tick.Duration,
		done:        make(chan struct{}),
		log:         logger.Component("service"),
	}
	s.refreshSnapshot()
	return s
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Token - сессия, выданная хабом; его проставляет транспорт, а не клиент.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownAction, externalCmd.Action)
	}

	select {
	case <-s.done:
		return ErrStopped
	default:
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Disconnect ставит в очередь выход игрока сессии и отписывает её.
func (s *GameService) Disconnect(session string) {
	if entity, ok := s.Hub.Entity(session); ok && !entity.IsNil() {
		if err := s.ProcessCommand(api.ClientCommand{Token: session, Action: "LEAVE"}); err != nil {
			s.log.WithError(err).WithField("session", session).Warn("Leave not queued")
		}
	}
	s.Hub.Unregister(session)
}

// --- GAME LOOP ---

// Run крутит такты до отмены контекста. Возвращает ошибку кадра
// (неизвестный тип движения) или nil при штатной остановке.
func (s *GameService) Run(ctx context.Context) error {
	defer close(s.done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.log.WithField("tick", s.tick).Info("Game loop started")
	for {
		select {
		case <-ctx.Done():
			s.Instance.Journal.Frames = s.Instance.Level.FrameNum
			s.log.WithField("frame", s.Instance.Level.FrameNum).Info("Game loop stopped")
			return nil
		case <-ticker.C:
			if err := s.Step(); err != nil {
				s.Instance.Journal.Frames = s.Instance.Level.FrameNum
				return err
			}
		}
	}
}

// Step применяет накопившиеся команды, прогоняет один такт и рассылает итог.
func (s *GameService) Step() error {
	s.drainCommands()
	if err := s.Instance.RunFrame(); err != nil {
		return err
	}
	s.publish()
	return nil
}

func (s *GameService) drainCommands() {
	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		default:
			return
		}
	}
}

func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	result, err := s.Instance.Apply(cmd)
	if err != nil {
		s.Hub.SendTo(cmd.Token, api.ServerResponse{
			Type:  api.MsgError,
			Frame: s.Instance.Level.FrameNum,
			Logs: []api.LogEntry{{
				ID:        fmt.Sprintf("err_%d", time.Now().UnixNano()),
				Text:      err.Error(),
				Type:      api.MsgError,
				Timestamp: time.Now().UnixMilli(),
			}},
		})
		return
	}

	switch {
	case cmd.Action == domain.ActionInit && !result.Entity.IsNil():
		s.Hub.Bind(cmd.Token, result.Entity)
		s.Hub.SendTo(cmd.Token, api.ServerResponse{
			Type:       api.MsgWelcome,
			Frame:      s.Instance.Level.FrameNum,
			Time:       s.Instance.Level.Time,
			MyEntityID: idString(result.Entity),
		})
	case cmd.Action == domain.ActionLeave:
		s.Hub.Bind(cmd.Token, types.NilEntityID)
	}
}

// publish рассылает события такта всем подписчикам.
func (s *GameService) publish() {
	inst := s.Instance
	events := inst.EventViews(inst.Events.Drain())
	entities := inst.EntityViews()
	logs := inst.DrainLogs()
	frame, now := inst.Level.FrameNum, inst.Level.Time

	s.Hub.Publish(func(entity types.EntityID) api.ServerResponse {
		return api.ServerResponse{
			Type:       api.MsgUpdate,
			Frame:      frame,
			Time:       now,
			MyEntityID: idString(entity),
			Events:     events,
			Entities:   entities,
			Logs:       logs,
		}
	})

	s.mu.Lock()
	s.snapshot = Snapshot{Level: inst.LevelView(), Entities: entities}
	s.mu.Unlock()
}

func (s *GameService) refreshSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{
		Level:    s.Instance.LevelView(),
		Entities: s.Instance.EntityViews(),
	}
}

// Snapshot возвращает последний снимок (безопасно из любой горутины).
func (s *GameService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// --- ВОСПРОИЗВЕДЕНИЕ ---

// Replay прогоняет журнал без таймера: команды подаются в те же такты,
// в которые были применены. Инстанс должен быть создан с сидом журнала.
func (s *GameService) Replay(j *domain.Journal) error {
	if j.Seed != s.Instance.Cfg.Seed {
		return fmt.Errorf("replay seed %d does not match instance seed %d", j.Seed, s.Instance.Cfg.Seed)
	}
	lvl := s.Instance.Level
	next := 0
	for {
		for next < len(j.Entries) && j.Entries[next].Frame <= lvl.FrameNum {
			e := j.Entries[next]
			s.executeCommand(domain.InternalCommand{Action: e.Action, Token: e.Token, Payload: e.Payload})
			next++
		}
		if lvl.FrameNum >= j.Frames {
			break
		}
		if err := s.Instance.RunFrame(); err != nil {
			return err
		}
		s.publish()
	}
	s.log.WithFields(logrus.Fields{
		"frames":   lvl.FrameNum,
		"commands": len(j.Entries),
		"killed":   lvl.KilledMonsters,
	}).Info("Replay finished")
	return nil
}
