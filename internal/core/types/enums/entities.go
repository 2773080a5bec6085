package enums

import "strings"

// EntityKind - вид сущности. Хранится в дескрипторе (types.EntityID.Kind).
type EntityKind uint8

const (
	KindWorld EntityKind = iota
	KindPlayer
	KindMonster
	KindNoise
	KindPathCorner
	KindCombatPoint
	KindTrigger
)

var entityKindToString = map[EntityKind]string{
	KindWorld:       "WORLD",
	KindPlayer:      "PLAYER",
	KindMonster:     "MONSTER",
	KindNoise:       "PLAYER_NOISE",
	KindPathCorner:  "PATH_CORNER",
	KindCombatPoint: "POINT_COMBAT",
	KindTrigger:     "TRIGGER_HURT",
}

var entityKindStringToKind = map[string]EntityKind{
	"WORLD":        KindWorld,
	"PLAYER":       KindPlayer,
	"MONSTER":      KindMonster,
	"PLAYER_NOISE": KindNoise,
	"PATH_CORNER":  KindPathCorner,
	"POINT_COMBAT": KindCombatPoint,
	"TRIGGER_HURT": KindTrigger,
}

// String возвращает строковое представление (для логов и дебага)
func (k EntityKind) String() string {
	if val, ok := entityKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (раскладка карты, дебаг-эндпоинты).
func ParseEntityKind(s string) (EntityKind, bool) {
	val, ok := entityKindStringToKind[strings.ToUpper(s)]
	return val, ok
}
