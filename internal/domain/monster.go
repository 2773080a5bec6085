package domain

import "github.com/iiroka/netquake2-sub002/internal/core/types/enums"

// AIFlags - набор флагов поведения монстра.
type AIFlags uint32

const (
	AIStandGround AIFlags = 1 << iota
	AITempStandGround
	AISoundTarget
	AILostSight
	AIPursuitLastSeen
	AIPursueNext
	AIPursueTemp
	AIHoldFrame
	AIGoodGuy
	AINoStep
	AICombatPoint
	AIWandering // преследование брошено, монстр бродит
)

func (f AIFlags) Has(x AIFlags) bool { return f&x != 0 }

// LongPause - "пауза навсегда" для монстров, которым некуда идти.
const LongPause = 100000000

// MonsterInfo - компонент поведения монстра.
type MonsterInfo struct {
	Species     *Species          `json:"-"`
	CurrentMove *MoveTable        `json:"-"`
	AIFlags     AIFlags           `json:"aiFlags"`
	AttackState enums.AttackState `json:"attackState"`
	Scale       float64           `json:"scale"`
	Lefty       bool              `json:"lefty"`

	nextFrame    int
	hasNextFrame bool

	PauseTime        float64 `json:"pauseTime"`
	AttackFinished   float64 `json:"attackFinished"`
	SearchTime       float64 `json:"searchTime"`
	TrailTime        float64 `json:"trailTime"`
	IdleTime         float64 `json:"idleTime"`
	PainDebounceTime float64 `json:"-"`

	LastSighting Vec3 `json:"lastSighting"`
	SavedGoal    Vec3 `json:"-"`

	// LinkCount - значение Entity.LinkCount на прошлой проверке земли.
	LinkCount int `json:"-"`
}

// SetNextFrame заказывает явный переход на кадр в следующем такте.
func (m *MonsterInfo) SetNextFrame(frame int) {
	m.nextFrame = frame
	m.hasNextFrame = true
}

// NextFrame возвращает заказанный кадр, если он есть.
func (m *MonsterInfo) NextFrame() (int, bool) {
	return m.nextFrame, m.hasNextFrame
}

// ClearNextFrame снимает заказ.
func (m *MonsterInfo) ClearNextFrame() {
	m.nextFrame = 0
	m.hasNextFrame = false
}

// MoveName - имя текущей таблицы (для логов и дебага).
func (m *MonsterInfo) MoveName() string {
	if m.CurrentMove == nil {
		return ""
	}
	return m.CurrentMove.Name
}
