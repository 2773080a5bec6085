package enums

// AttackState - способ сближения с врагом. Имеет смысл только пока есть враг.
type AttackState uint8

const (
	AttackNone AttackState = iota
	AttackStraight
	AttackSliding
	AttackMelee
	AttackMissile
)

var attackStateToString = map[AttackState]string{
	AttackNone:     "NONE",
	AttackStraight: "STRAIGHT",
	AttackSliding:  "SLIDING",
	AttackMelee:    "MELEE",
	AttackMissile:  "MISSILE",
}

func (a AttackState) String() string {
	if val, ok := attackStateToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Range - грубая категория дистанции. Порядок констант совпадает с порядком дистанций.
type Range uint8

const (
	RangeMelee Range = iota
	RangeNear
	RangeMid
	RangeFar
)

var rangeToString = map[Range]string{
	RangeMelee: "MELEE",
	RangeNear:  "NEAR",
	RangeMid:   "MID",
	RangeFar:   "FAR",
}

func (r Range) String() string {
	if val, ok := rangeToString[r]; ok {
		return val
	}
	return "UNKNOWN"
}
