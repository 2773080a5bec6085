package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	MsgWelcome = "WELCOME" // ответ на INIT: клиенту выдан игрок
	MsgUpdate  = "UPDATE"  // события такта и снимок видимых сущностей
	MsgError   = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Отправляется после каждого такта, в котором для клиента что-то произошло.
type ServerResponse struct {
	// Type тип сообщения (WELCOME, UPDATE, ERROR).
	Type string `json:"type"`

	// Frame номер такта, после которого собран ответ.
	Frame int `json:"frame"`

	// Time время уровня в секундах.
	Time float64 `json:"time"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	// Пусто у зрителей.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Events события такта: звуки, атаки, урон, смерти.
	Events []EventView `json:"events,omitempty"`

	// Entities снимок сущностей (игроки и монстры).
	Entities []EntityView `json:"entities,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого такта.
	Logs []LogEntry `json:"logs,omitempty"`
}

// EventView это DTO одного события симуляции.
type EventView struct {
	Kind    string     `json:"kind"` // SOUND, ATTACK, DAMAGE, PAIN, DEATH, GIB, SIGHT, SPAWN
	Frame   int        `json:"frame"`
	Entity  string     `json:"entity"`
	Other   string     `json:"other,omitempty"`
	Origin  [3]float64 `json:"origin"`
	Sound   string     `json:"sound,omitempty"`
	Channel uint8      `json:"channel,omitempty"`
	Damage  int        `json:"damage,omitempty"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"` // PLAYER, MONSTER
	ClassName string     `json:"className"`
	Origin    [3]float64 `json:"origin"`
	Yaw       float64    `json:"yaw"`
	Health    int        `json:"health"`
	MaxHealth int        `json:"maxHealth"`
	Frame     int        `json:"frame"`
	IsDead    bool       `json:"isDead"`

	// Только у монстров.
	Move  string `json:"move,omitempty"`
	Enemy string `json:"enemy,omitempty"`
}

// LevelView это DTO слотов восприятия и счётчиков уровня (отладка).
type LevelView struct {
	Frame          int     `json:"frame"`
	Time           float64 `json:"time"`
	SightClient    string  `json:"sightClient,omitempty"`
	SightEntity    string  `json:"sightEntity,omitempty"`
	SoundEntity    string  `json:"soundEntity,omitempty"`
	Sound2Entity   string  `json:"sound2Entity,omitempty"`
	TotalMonsters  int     `json:"totalMonsters"`
	KilledMonsters int     `json:"killedMonsters"`
	EntitiesInUse  int     `json:"entitiesInUse"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token сессия клиента. Выдаётся сервером при подключении.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InitPayload используется для входа в игру (INIT).
type InitPayload struct {
	Name string `json:"name"`
}

// MovePayload шаг игрока: поворот и расстояние (MOVE).
type MovePayload struct {
	Yaw  float64 `json:"yaw"`
	Dist float64 `json:"dist"`
}

// AimPayload выстрел игрока по направлению взгляда (ATTACK).
type AimPayload struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// NoisePayload явный шум игрока (NOISE): "self" или "impact".
type NoisePayload struct {
	Kind string `json:"kind"`
}

// SpawnPayload чит SPAWN: монстр вида Species перед игроком.
type SpawnPayload struct {
	Species string  `json:"species"`
	Dist    float64 `json:"dist"` // 0 - по умолчанию
}

// KillPayload чит KILL: цель по дескриптору из EntityView.ID.
type KillPayload struct {
	TargetID string `json:"targetId"`
}
