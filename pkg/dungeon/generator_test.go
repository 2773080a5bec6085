package dungeon

import (
	"testing"

	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpecies = []string{"soldier", "brute"}

func TestGenerate(t *testing.T) {
	layout := Generate(42, testSpecies)

	// 1. Проверка размеров
	assert.Equal(t, MapWidth, layout.Width)
	assert.Equal(t, MapHeight, layout.Height)
	require.NotEmpty(t, layout.Brushes, "no geometry")

	// 2. Игрок не должен появиться в стене
	require.NotEmpty(t, layout.PlayerStarts)
	for _, p := range layout.PlayerStarts {
		assert.False(t, layout.Solid(p), "player start %v inside a wall", p)
		assert.Greater(t, p[2], 0.0)
	}

	// 3. Монстры на свободных тайлах и только известных видов
	require.NotEmpty(t, layout.Monsters)
	for _, m := range layout.Monsters {
		assert.False(t, layout.Solid(m.Origin), "monster at %v inside a wall", m.Origin)
		assert.Contains(t, testSpecies, m.Species)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(7, testSpecies)
	b := Generate(7, testSpecies)
	assert.Equal(t, a, b)

	c := Generate(8, testSpecies)
	assert.NotEqual(t, a.Brushes, c.Brushes)
}

func TestTargetsResolve(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		layout := Generate(seed, testSpecies)

		names := map[string]enums.EntityKind{}
		for _, m := range layout.Markers {
			names[m.TargetName] = m.Kind
		}
		for _, m := range layout.Markers {
			if m.Target == "" {
				continue
			}
			assert.Contains(t, names, m.Target, "seed %d: dangling marker target", seed)
		}
		for _, m := range layout.Monsters {
			if m.Target != "" {
				assert.Equal(t, enums.KindPathCorner, names[m.Target], "seed %d", seed)
			}
			if m.CombatTarget != "" {
				assert.Equal(t, enums.KindCombatPoint, names[m.CombatTarget], "seed %d", seed)
			}
			// Маршрут и точка боя не смешиваются у одного монстра
			assert.False(t, m.Target != "" && m.CombatTarget != "", "seed %d", seed)
		}
	}
}

func TestBrushesStayInBounds(t *testing.T) {
	layout := Generate(3, testSpecies)
	maxX := float64(layout.Width * TileSize)
	maxY := float64(layout.Height * TileSize)
	for _, b := range layout.Brushes {
		assert.GreaterOrEqual(t, b.Mins[0], 0.0)
		assert.GreaterOrEqual(t, b.Mins[1], 0.0)
		assert.LessOrEqual(t, b.Maxs[0], maxX)
		assert.LessOrEqual(t, b.Maxs[1], maxY)
		assert.Equal(t, domain.ContentsSolid, b.Contents)
	}
}

func TestHazardIsSlow(t *testing.T) {
	layout := NewLevel(1, nil).WithSize(12, 12).Build()
	assert.Empty(t, layout.Hazards, "no rooms, no hazard")

	layout = Generate(5, testSpecies)
	for _, h := range layout.Hazards {
		assert.Positive(t, h.Dmg)
		assert.NotZero(t, h.SpawnFlags)
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}

	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}
