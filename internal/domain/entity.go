package domain

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
)

// EntityFlags - общие флаги сущности.
type EntityFlags uint32

const (
	FlagFly EntityFlags = 1 << iota
	FlagSwim
	FlagGodMode
	FlagNoTarget
	FlagPartialGround // опора частично ушла из-под ног
	FlagNoKnockback
)

func (f EntityFlags) Has(x EntityFlags) bool { return f&x != 0 }

// ServerFlags - флаги, которые видит слой столкновений.
type ServerFlags uint8

const (
	SvNoClient ServerFlags = 1 << iota
	SvMonster
	SvDeadMonster
)

func (f ServerFlags) Has(x ServerFlags) bool { return f&x != 0 }

// DamageMode - может ли сущность получать урон.
type DamageMode uint8

const (
	DamageNo DamageMode = iota
	DamageYes
	DamageAim
)

// DeadFlag - стадия смерти.
type DeadFlag uint8

const (
	DeadNo DeadFlag = iota
	DeadDying
	DeadDead
)

// Entity - ядро любой сущности симуляции.
// Монстры и игроки отличаются только подключёнными компонентами
// (Monster / Client); указатель nil означает отсутствие компонента.
type Entity struct {
	ID        types.EntityID   `json:"id"`
	InUse     bool             `json:"inUse"`
	Kind      enums.EntityKind `json:"kind"`
	ClassName string           `json:"className"`
	FreeTime  float64          `json:"-"`

	// --- Физика ---
	Origin    Vec3           `json:"origin"`
	OldOrigin Vec3           `json:"-"`
	Angles    Vec3           `json:"angles"`
	Velocity  Vec3           `json:"velocity"`
	Mins      Vec3           `json:"mins"`
	Maxs      Vec3           `json:"maxs"`
	AbsMin    Vec3           `json:"-"`
	AbsMax    Vec3           `json:"-"`
	Size      Vec3           `json:"-"`
	Solid     Solid          `json:"solid"`
	ClipMask  Contents       `json:"-"`
	MoveType  enums.MoveType `json:"moveType"`
	Flags     EntityFlags    `json:"flags"`
	SvFlags   ServerFlags    `json:"svFlags"`
	Linked    bool           `json:"-"`
	LinkCount int            `json:"-"`
	Mass      int            `json:"mass"`

	GroundEntity    types.EntityID `json:"groundEntity"`
	GroundLinkCount int            `json:"-"`
	WaterLevel      int            `json:"waterLevel"`
	WaterType       Contents       `json:"-"`

	// --- Ориентация ---
	ViewHeight float64 `json:"viewHeight"`
	YawSpeed   float64 `json:"yawSpeed"`
	IdealYaw   float64 `json:"idealYaw"`

	// --- Здоровье ---
	Health     int        `json:"health"`
	MaxHealth  int        `json:"maxHealth"`
	GibHealth  int        `json:"gibHealth"`
	DeadFlag   DeadFlag   `json:"deadFlag"`
	TakeDamage DamageMode `json:"takeDamage"`

	// --- Восприятие ---
	LightLevel  int     `json:"lightLevel"`
	ShowHostile float64 `json:"-"`
	NoiseTime   float64 `json:"-"` // когда шумовой прокси последний раз звучал

	// --- Ссылки (невладеющие) ---
	Enemy      types.EntityID `json:"enemy"`
	OldEnemy   types.EntityID `json:"oldEnemy"`
	GoalEntity types.EntityID `json:"goalEntity"`
	MoveTarget types.EntityID `json:"moveTarget"`
	Owner      types.EntityID `json:"owner"`

	// --- Связи карты по именам ---
	Target       string  `json:"target,omitempty"`
	TargetName   string  `json:"targetName,omitempty"`
	CombatTarget string  `json:"combatTarget,omitempty"`
	SpawnFlags   int     `json:"spawnFlags,omitempty"`
	Wait         float64 `json:"wait,omitempty"`
	Dmg          int     `json:"dmg,omitempty"`
	Timestamp    float64 `json:"-"`

	// --- Поведение ---
	Frame     int     `json:"frame"`
	Think     ThinkID `json:"think"`
	NextThink float64 `json:"nextThink"`
	Touch     TouchID `json:"touch"`

	// --- Компоненты ---
	Monster *MonsterInfo `json:"monster,omitempty"`
	Client  *ClientInfo  `json:"client,omitempty"`
}

// Флаги появления.
const (
	// SpawnAmbush - монстр реагирует только на то, что видит.
	SpawnAmbush = 1
	// SpawnCombatHold - точка боя, на которой монстр держит позицию.
	SpawnCombatHold = 1
)

// IsMonster - управляется ли сущность ИИ монстров.
func (e *Entity) IsMonster() bool {
	return e.Monster != nil && e.SvFlags.Has(SvMonster)
}

// IsClient - подключённый игрок.
func (e *Entity) IsClient() bool {
	return e.Client != nil
}

// Alive - живая (для целей восприятия и выбора цели).
func (e *Entity) Alive() bool {
	return e.InUse && e.Health > 0
}

// EyePosition - точка глаз.
func (e *Entity) EyePosition() Vec3 {
	return Vec3{e.Origin[0], e.Origin[1], e.Origin[2] + e.ViewHeight}
}

// Box - мировые границы коробки (без расширения на 1 юнит, как у AbsMin/AbsMax).
func (e *Entity) Box() (mins, maxs Vec3) {
	return e.Origin.Add(e.Mins), e.Origin.Add(e.Maxs)
}

// Locomotion - флаги способа передвижения (полёт/плавание).
func (e *Entity) Locomotion() EntityFlags {
	return e.Flags & (FlagFly | FlagSwim)
}
