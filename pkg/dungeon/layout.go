package dungeon

import (
	"github.com/iiroka/netquake2-sub002/internal/collision"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// MonsterSpawn - точка появления монстра.
type MonsterSpawn struct {
	Species      string      `json:"species"`
	Origin       domain.Vec3 `json:"origin"`
	Yaw          float64     `json:"yaw"`
	Target       string      `json:"target,omitempty"`
	CombatTarget string      `json:"combatTarget,omitempty"`
	SpawnFlags   int         `json:"spawnFlags,omitempty"`
}

// MarkerSpawn - точка маршрута (path_corner) или точка боя (point_combat).
type MarkerSpawn struct {
	Kind       enums.EntityKind `json:"kind"`
	Origin     domain.Vec3      `json:"origin"`
	TargetName string           `json:"targetName"`
	Target     string           `json:"target,omitempty"`
	Wait       float64          `json:"wait,omitempty"`
	SpawnFlags int              `json:"spawnFlags,omitempty"`
}

// HazardSpawn - зона урона (trigger_hurt) в мировых координатах.
type HazardSpawn struct {
	Mins       domain.Vec3 `json:"mins"`
	Maxs       domain.Vec3 `json:"maxs"`
	Dmg        int         `json:"dmg"`
	SpawnFlags int         `json:"spawnFlags,omitempty"`
}

// Layout - готовый уровень: статическая геометрия и всё, что на нём появляется.
type Layout struct {
	Seed   int64 `json:"seed"`
	Width  int   `json:"width"`  // в тайлах
	Height int   `json:"height"` // в тайлах

	Brushes      []collision.Brush `json:"brushes"`
	PlayerStarts []domain.Vec3     `json:"playerStarts"`
	Monsters     []MonsterSpawn    `json:"monsters"`
	Markers      []MarkerSpawn     `json:"markers"`
	Hazards      []HazardSpawn     `json:"hazards"`
}

// Solid - лежит ли точка внутри твёрдого браша.
func (l *Layout) Solid(p domain.Vec3) bool {
	for _, b := range l.Brushes {
		if b.Contents&domain.ContentsSolid == 0 {
			continue
		}
		if p[0] > b.Mins[0] && p[0] < b.Maxs[0] &&
			p[1] > b.Mins[1] && p[1] < b.Maxs[1] &&
			p[2] > b.Mins[2] && p[2] < b.Maxs[2] {
			return true
		}
	}
	return false
}
