package enums

// MoveType выбирает физику сущности в планировщике кадра.
type MoveType uint8

const (
	MoveTypeNone       MoveType = iota // никогда не двигается, только think
	MoveTypeNoclip                     // сквозь стены по скорости
	MoveTypeWalk                       // игроки: двигаются только командами
	MoveTypeStep                       // шагающие/летающие монстры
	MoveTypeFly                        // полёт без гравитации
	MoveTypeToss                       // гравитация, остановка на земле (трупы)
	MoveTypeFlyMissile                 // полёт снаряда
	MoveTypeBounce                     // гравитация с отскоком
)

var moveTypeToString = map[MoveType]string{
	MoveTypeNone:       "NONE",
	MoveTypeNoclip:     "NOCLIP",
	MoveTypeWalk:       "WALK",
	MoveTypeStep:       "STEP",
	MoveTypeFly:        "FLY",
	MoveTypeToss:       "TOSS",
	MoveTypeFlyMissile: "FLYMISSILE",
	MoveTypeBounce:     "BOUNCE",
}

func (m MoveType) String() string {
	if val, ok := moveTypeToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}
