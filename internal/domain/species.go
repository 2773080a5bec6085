package domain

// SoundIndex - номер звука в реестре, выданный при загрузке видов.
// Ноль означает "звука нет".
type SoundIndex uint16

// SpeciesMoves - таблицы движения вида. nil означает отсутствие способности.
type SpeciesMoves struct {
	Stand  *MoveTable
	Walk   *MoveTable
	Run    *MoveTable
	Attack *MoveTable // дальняя атака
	Melee  *MoveTable
	Pain   *MoveTable
	Death  *MoveTable
}

// SpeciesSounds - звуки вида.
type SpeciesSounds struct {
	Sight   SoundIndex
	Idle    SoundIndex
	Search  SoundIndex
	Pain    SoundIndex
	Death   SoundIndex
	Gib     SoundIndex
	Melee   SoundIndex
	Fire    SoundIndex
	Step    SoundIndex
}

// Species - неизменяемое описание вида монстров, общее для всех его особей.
type Species struct {
	Name       string
	Locomotion EntityFlags // FlagFly / FlagSwim или ноль для шагающих
	Health     int
	GibHealth  int
	Mass       int
	Mins       Vec3
	Maxs       Vec3
	YawSpeed   float64
	ViewHeight float64
	Scale      float64

	MeleeDamage   int
	MissileDamage int
	MissileSpread float64

	// Indiscriminate - палит во всё подряд; попадания от него не провоцируют драку между монстрами.
	Indiscriminate bool

	Moves  SpeciesMoves
	Sounds SpeciesSounds
}

// HasMelee / HasMissile - способности вида.
func (s *Species) HasMelee() bool   { return s.Moves.Melee != nil }
func (s *Species) HasMissile() bool { return s.Moves.Attack != nil }
