package species

// Сырые описания видов в том виде, в каком они лежат в YAML.
// Компиляция в domain.Species живёт в compile.go.

type rawSpecies struct {
	Name           string             `yaml:"name"`
	Locomotion     string             `yaml:"locomotion"`
	Health         int                `yaml:"health"`
	GibHealth      int                `yaml:"gib_health"`
	Mass           int                `yaml:"mass"`
	Mins           [3]float64         `yaml:"mins"`
	Maxs           [3]float64         `yaml:"maxs"`
	YawSpeed       float64            `yaml:"yaw_speed"`
	ViewHeight     float64            `yaml:"view_height"`
	Scale          float64            `yaml:"scale"`
	MeleeDamage    int                `yaml:"melee_damage"`
	MissileDamage  int                `yaml:"missile_damage"`
	MissileSpread  float64            `yaml:"missile_spread"`
	Indiscriminate bool               `yaml:"indiscriminate"`
	Sounds         map[string]string  `yaml:"sounds"`
	Moves          map[string]rawMove `yaml:"moves"`
}

type rawMove struct {
	First  int        `yaml:"first"`
	End    string     `yaml:"end"`
	Frames []rawFrame `yaml:"frames"`
}

// rawFrame - кадр или серия одинаковых кадров (count).
type rawFrame struct {
	AI     string  `yaml:"ai"`
	Dist   float64 `yaml:"dist"`
	Action string  `yaml:"action"`
	Count  int     `yaml:"count"`
}
