package domain

import "strings"

// Поведенческие функции кадров описываются идентификаторами, а не указателями
// на функции: таблицы остаются данными (их можно грузить из YAML и сравнивать
// в тестах), а диспетчеризация живёт в пакете systems.

// IntentID - функция намерения кадра (куда и как двигаться).
type IntentID uint8

const (
	IntentNone IntentID = iota
	IntentStand
	IntentWalk
	IntentRun
	IntentCharge
	IntentMove
	IntentTurn
	IntentCount
)

// FrameActionID - побочное действие кадра (звук, удар, выстрел).
type FrameActionID uint8

const (
	FrameActionNone FrameActionID = iota
	FrameActionFootstep
	FrameActionIdleSound
	FrameActionMeleeHit
	FrameActionFire
	FrameActionCount
)

// EndID - функция конца последовательности.
type EndID uint8

const (
	EndNone EndID = iota
	EndRun        // вернуться к бегу (после атаки/боли)
	EndStand      // вернуться к стойке
	EndWalk       // вернуться к патрулю
	EndDead       // превратиться в неосязаемый труп
	EndCount
)

// ThinkID - периодическая функция сущности.
type ThinkID uint8

const (
	ThinkNone ThinkID = iota
	ThinkMonster
	ThinkFree
	ThinkCount
)

// TouchID - реакция на касание триггера.
type TouchID uint8

const (
	TouchNone TouchID = iota
	TouchPathCorner
	TouchPointCombat
	TouchHurt
	TouchCount
)

var intentNames = map[string]IntentID{
	"":       IntentNone,
	"none":   IntentNone,
	"stand":  IntentStand,
	"walk":   IntentWalk,
	"run":    IntentRun,
	"charge": IntentCharge,
	"move":   IntentMove,
	"turn":   IntentTurn,
}

var frameActionNames = map[string]FrameActionID{
	"":         FrameActionNone,
	"none":     FrameActionNone,
	"footstep": FrameActionFootstep,
	"idle":     FrameActionIdleSound,
	"melee":    FrameActionMeleeHit,
	"fire":     FrameActionFire,
}

var endNames = map[string]EndID{
	"":      EndNone,
	"none":  EndNone,
	"run":   EndRun,
	"stand": EndStand,
	"walk":  EndWalk,
	"dead":  EndDead,
}

// ParseIntent, ParseFrameAction и ParseEnd переводят имена из описаний видов.
func ParseIntent(s string) (IntentID, bool) {
	v, ok := intentNames[strings.ToLower(s)]
	return v, ok
}

func ParseFrameAction(s string) (FrameActionID, bool) {
	v, ok := frameActionNames[strings.ToLower(s)]
	return v, ok
}

func ParseEnd(s string) (EndID, bool) {
	v, ok := endNames[strings.ToLower(s)]
	return v, ok
}

// Frame - один кадр таблицы движения.
type Frame struct {
	Intent IntentID
	Dist   float64
	Action FrameActionID
}

// MoveTable - неизменяемая последовательность кадров [FirstFrame..LastFrame].
// Одна таблица разделяется всеми монстрами вида.
type MoveTable struct {
	Name       string
	FirstFrame int
	LastFrame  int
	Frames     []Frame
	End        EndID
}

// Contains - лежит ли кадр в границах таблицы.
func (m *MoveTable) Contains(frame int) bool {
	return frame >= m.FirstFrame && frame <= m.LastFrame
}

// FrameAt возвращает кадр по абсолютному номеру. Номер должен быть в границах.
func (m *MoveTable) FrameAt(frame int) Frame {
	return m.Frames[frame-m.FirstFrame]
}

// Valid проверяет инварианты таблицы.
func (m *MoveTable) Valid() bool {
	return m.FirstFrame <= m.LastFrame && len(m.Frames) == m.LastFrame-m.FirstFrame+1
}
