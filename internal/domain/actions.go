package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionAttack
	ActionNoise
	ActionWait
	ActionLeave

	// Читы: регистрируются, только если включены в конфиге
	ActionGod
	ActionNoTarget
	ActionSpawn
	ActionKill
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":   ActionInit,
	"MOVE":   ActionMove,
	"ATTACK": ActionAttack,
	"NOISE":  ActionNoise,
	"WAIT":   ActionWait,
	"LEAVE":  ActionLeave,

	"GOD":      ActionGod,
	"NOTARGET": ActionNoTarget,
	"SPAWN":    ActionSpawn,
	"KILL":     ActionKill,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:   "INIT",
	ActionMove:   "MOVE",
	ActionAttack: "ATTACK",
	ActionNoise:  "NOISE",
	ActionWait:   "WAIT",
	ActionLeave:  "LEAVE",

	ActionGod:      "GOD",
	ActionNoTarget: "NOTARGET",
	ActionSpawn:    "SPAWN",
	ActionKill:     "KILL",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
