package agent

import (
	"context"
	"encoding/json"
	"math"

	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Параметры поведения бота.
const (
	thinkEvery  = 3   // решать раз в столько тактов
	attackRange = 768 // ближе этого стреляет, дальше идёт
	stepDist    = 32  // длина одного шага MOVE
	eyeHeight   = 22  // высота глаз игрока над origin
	noiseEvery  = 30  // без целей шумит, чтобы приманить монстров
)

const monsterKind = "MONSTER"

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подключается к сервису так же, как WebSocket-клиент: получает сессию
// в хабе, шлёт INIT и дальше отвечает на UPDATE командами MOVE/ATTACK/NOISE.
// Бот видит мир только через DTO из рассылки.
type Bot struct {
	Name    string
	Session string
	Service *engine.GameService
	Inbox   <-chan api.ServerResponse

	EntityID string // выдаётся в WELCOME
	lastTurn int

	log *logrus.Entry
}

func NewBot(name string, service *engine.GameService) *Bot {
	session, inbox := service.Hub.Register()
	b := &Bot{
		Name:    name,
		Session: session,
		Service: service,
		Inbox:   inbox,
		log:     logger.Component("bot").WithFields(logrus.Fields{"name": name, "session": session}),
	}
	b.log.Info("Agent created")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Disconnect(b.Session)

	b.sendCommand(domain.ActionInit, api.InitPayload{Name: b.Name})
	for {
		select {
		case <-ctx.Done():
			b.log.Info("Agent shut down")
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			b.handle(msg)
		}
	}
}

func (b *Bot) handle(msg api.ServerResponse) {
	switch msg.Type {
	case api.MsgWelcome:
		b.EntityID = msg.MyEntityID
		b.log.WithField("entity", b.EntityID).Info("Joined arena")
	case api.MsgUpdate:
		if b.EntityID == "" || msg.Frame-b.lastTurn < thinkEvery {
			return
		}
		b.lastTurn = msg.Frame
		b.makeMove(msg)
	case api.MsgError:
		for _, l := range msg.Logs {
			b.log.WithField("frame", msg.Frame).Debug(l.Text)
		}
	}
}

// makeMove - мозг бота: ближайший живой монстр, стрелять или подойти.
func (b *Bot) makeMove(state api.ServerResponse) {
	me := b.findSelf(state.Entities)
	if me == nil || me.IsDead {
		return
	}

	target := nearestMonster(me, state.Entities)
	if target == nil {
		if state.Frame%noiseEvery < thinkEvery {
			b.sendCommand(domain.ActionNoise, api.NoisePayload{Kind: "self"})
			return
		}
		b.sendCommand(domain.ActionWait, nil)
		return
	}

	eye := domain.Vec3(me.Origin)
	eye[2] += eyeHeight
	delta := domain.Vec3(target.Origin).Sub(eye)
	yaw := domain.VecToYaw(delta)
	horiz := math.Hypot(delta[0], delta[1])

	if horiz > attackRange {
		b.sendCommand(domain.ActionMove, api.MovePayload{Yaw: yaw, Dist: stepDist})
		return
	}

	// Положительный pitch смотрит вниз
	pitch := -math.Atan2(delta[2], horiz) * 180 / math.Pi
	b.sendCommand(domain.ActionAttack, api.AimPayload{Yaw: yaw, Pitch: pitch})
}

func (b *Bot) findSelf(entities []api.EntityView) *api.EntityView {
	for i := range entities {
		if entities[i].ID == b.EntityID {
			return &entities[i]
		}
	}
	return nil
}

func nearestMonster(me *api.EntityView, entities []api.EntityView) *api.EntityView {
	var best *api.EntityView
	bestDist := math.MaxFloat64
	for i := range entities {
		e := &entities[i]
		if e.Kind != monsterKind || e.IsDead {
			continue
		}
		d := domain.Vec3(e.Origin).Sub(domain.Vec3(me.Origin)).Length()
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) sendCommand(action domain.ActionType, payload interface{}) {
	cmd := api.ClientCommand{
		Action: action.String(),
		Token:  b.Session,
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Error("Error marshalling payload")
			return
		}
		cmd.Payload = payloadBytes
	}
	if err := b.Service.ProcessCommand(cmd); err != nil {
		b.log.WithError(err).WithField("action", cmd.Action).Warn("Command not queued")
	}
}
