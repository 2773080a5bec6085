package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
)

// Duration - time.Duration, которую можно писать в TOML строкой ("100ms").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят арена и все броски симуляции.
	Seed  int64            `toml:"seed"`
	Skill enums.Difficulty `toml:"skill"`

	// Пул сущностей
	MaxEntities int `toml:"max_entities"`
	MaxClients  int `toml:"max_clients"`

	// Такт и физика
	Tick      Duration `toml:"tick"`
	Gravity   float64  `toml:"gravity"`
	Friction  float64  `toml:"friction"`
	StopSpeed float64  `toml:"stop_speed"`

	// Сервис
	Port       int    `toml:"port"`
	SpeciesDir string `toml:"species_dir"` // пусто - встроенные виды
	JournalDir string `toml:"journal_dir"`

	// Cheats открывает команды GOD, NOTARGET, SPAWN, KILL
	Cheats bool `toml:"cheats"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:        time.Now().UnixNano(),
		Skill:       enums.DifficultyMedium,
		MaxEntities: 1024,
		MaxClients:  8,
		Tick:        Duration{100 * time.Millisecond},
		Gravity:     800,
		Friction:    6,
		StopSpeed:   100,
		Port:        8080,
		JournalDir:  "journals",
	}
}

// LoadConfig читает TOML поверх значений по умолчанию.
// Пустой path означает "только значения по умолчанию".
// Переменная окружения CD_PORT перекрывает порт.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
		}
	}

	if port, ok := os.LookupEnv("CD_PORT"); ok {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("CD_PORT: %w", err)
		}
		cfg.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет, что с такими параметрами симуляция может работать.
func (c Config) Validate() error {
	if c.MaxClients < 1 {
		return fmt.Errorf("max_clients must be positive, got %d", c.MaxClients)
	}
	if c.MaxEntities < c.MaxClients+2 {
		return fmt.Errorf("max_entities %d too small for %d clients", c.MaxEntities, c.MaxClients)
	}
	if c.Tick.Duration <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
