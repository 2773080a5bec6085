package domain

import "github.com/iiroka/netquake2-sub002/internal/core/types"

// EventKind - тип события, которое симуляция отдаёт наружу.
type EventKind uint8

const (
	EventSound EventKind = iota + 1
	EventAttack
	EventDamage
	EventPain
	EventDeath
	EventGib
	EventSight
	EventSpawn
)

var eventKindToString = map[EventKind]string{
	EventSound:  "SOUND",
	EventAttack: "ATTACK",
	EventDamage: "DAMAGE",
	EventPain:   "PAIN",
	EventDeath:  "DEATH",
	EventGib:    "GIB",
	EventSight:  "SIGHT",
	EventSpawn:  "SPAWN",
}

func (k EventKind) String() string {
	if v, ok := eventKindToString[k]; ok {
		return v
	}
	return "UNKNOWN"
}

// SoundChannel - канал звука у сущности.
type SoundChannel uint8

const (
	ChannelAuto SoundChannel = iota
	ChannelWeapon
	ChannelVoice
	ChannelBody
)

// Event - уведомление "выстрелил и забыл": симуляция не ждёт и не читает результат.
type Event struct {
	Kind    EventKind
	Frame   int
	Entity  types.EntityID
	Other   types.EntityID
	Origin  Vec3
	Sound   SoundIndex
	Channel SoundChannel
	Damage  int
}

// EventSink - получатель событий.
type EventSink interface {
	Emit(ev Event)
}

// EventBuffer накапливает события за такт. Используется движком и тестами.
type EventBuffer struct {
	events []Event
}

func (b *EventBuffer) Emit(ev Event) {
	b.events = append(b.events, ev)
}

// Events возвращает накопленное без очистки.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Drain забирает накопленные события.
func (b *EventBuffer) Drain() []Event {
	out := b.events
	b.events = nil
	return out
}

// Count считает события заданного типа.
func (b *EventBuffer) Count(kind EventKind) int {
	n := 0
	for _, ev := range b.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
