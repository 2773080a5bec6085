package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/iiroka/netquake2-sub002/internal/collision"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/systems"
)

// Высоты точек появления над полом (z=0).
const (
	monsterZ = 48 // шагающие монстры опускаются на пол сами
	playerZ  = 24 + 1
	markerZ  = 16
)

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	seed    int64
	width   int
	height  int
	rooms   []Rect
	grid    [][]bool
	layout  *Layout
	rng     *rand.Rand
	guarded map[int]bool // комнаты, где монстры уже получили маршрут или точку боя
	roomOf  []int        // комната каждого монстра в layout.Monsters
}

// NewLevel создает новый builder для уровня
func NewLevel(seed int64, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		seed:    seed,
		width:   MapWidth,
		height:  MapHeight,
		rng:     rng,
		layout:  &Layout{Seed: seed},
		guarded: make(map[int]bool),
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.grid = newGrid(b.width, b.height)

	b.rooms = make([]Rect, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(MinSize, MaxSize)
		h := b.randRange(MinSize, MaxSize)
		if w > b.width-2 || h > b.height-2 {
			continue
		}
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.grid, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.grid, prevX, currX, prevY)
				createVCorridor(b.grid, prevY, currY, currX)
			} else {
				createVCorridor(b.grid, prevY, currY, prevX)
				createHCorridor(b.grid, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// SpawnMonsters ставит до perRoom монстров в каждую комнату, кроме первой.
func (b *LevelBuilder) SpawnMonsters(species []string, perRoom int) *LevelBuilder {
	if len(species) == 0 {
		return b
	}
	for idx := 1; idx < len(b.rooms); idx++ {
		cx, cy := b.rooms[idx].Center()
		count := 1 + b.rng.Intn(perRoom)
		for n := 0; n < count; n++ {
			tx, ty := cx+b.randRange(-1, 1), cy+b.randRange(-1, 1)
			if !b.free(tx, ty) {
				tx, ty = cx, cy
			}
			b.layout.Monsters = append(b.layout.Monsters, MonsterSpawn{
				Species: species[b.rng.Intn(len(species))],
				Origin:  tileCenter(tx, ty, monsterZ),
				Yaw:     float64(b.rng.Intn(8) * 45),
			})
			b.roomOf = append(b.roomOf, idx)
		}
	}
	return b
}

// WithPatrols с вероятностью chance прокладывает в комнате кольцевой маршрут
// по четырём углам; первый монстр комнаты идёт по нему.
func (b *LevelBuilder) WithPatrols(chance float64) *LevelBuilder {
	for idx := 1; idx < len(b.rooms); idx++ {
		if b.guarded[idx] || b.rng.Float64() >= chance {
			continue
		}
		m := b.firstMonsterIn(idx)
		if m == nil {
			continue
		}
		x0, y0, x1, y1 := b.rooms[idx].Inner()
		corners := [4][2]int{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		for k, corner := range corners {
			marker := MarkerSpawn{
				Kind:       enums.KindPathCorner,
				Origin:     tileCenter(corner[0], corner[1], markerZ),
				TargetName: patrolName(idx, k),
				Target:     patrolName(idx, (k+1)%len(corners)),
			}
			// На одном из углов монстр осматривается
			if k == 2 {
				marker.Wait = 2
			}
			b.layout.Markers = append(b.layout.Markers, marker)
		}
		m.Target = patrolName(idx, 0)
		b.guarded[idx] = true
	}
	return b
}

// WithCombatPoints с вероятностью chance ставит точку боя в угол комнаты:
// заметив врага, монстры комнаты сначала бегут к ней и держат позицию.
func (b *LevelBuilder) WithCombatPoints(chance float64) *LevelBuilder {
	for idx := 1; idx < len(b.rooms); idx++ {
		if b.guarded[idx] || b.rng.Float64() >= chance {
			continue
		}
		if b.firstMonsterIn(idx) == nil {
			continue
		}
		x0, y0, _, _ := b.rooms[idx].Inner()
		name := fmt.Sprintf("combat%d", idx)
		b.layout.Markers = append(b.layout.Markers, MarkerSpawn{
			Kind:       enums.KindCombatPoint,
			Origin:     tileCenter(x0, y0, markerZ),
			TargetName: name,
			SpawnFlags: domain.SpawnCombatHold,
		})
		for i := range b.layout.Monsters {
			if b.roomOf[i] == idx {
				b.layout.Monsters[i].CombatTarget = name
			}
		}
		b.guarded[idx] = true
	}
	return b
}

// WithHazard кладёт зону медленного урона в дальний угол последней комнаты.
func (b *LevelBuilder) WithHazard(dmg int) *LevelBuilder {
	if len(b.rooms) < 2 {
		return b
	}
	_, _, x1, y1 := b.rooms[len(b.rooms)-1].Inner()
	center := tileCenter(x1, y1, 0)
	half := domain.Vec3{TileSize / 2, TileSize / 2, 0}
	b.layout.Hazards = append(b.layout.Hazards, HazardSpawn{
		Mins:       domain.Vec3{center[0] - half[0], center[1] - half[1], 0},
		Maxs:       domain.Vec3{center[0] + half[0], center[1] + half[1], 32},
		Dmg:        dmg,
		SpawnFlags: systems.HurtSlow,
	})
	return b
}

// Build собирает геометрию и возвращает готовый уровень
func (b *LevelBuilder) Build() *Layout {
	l := b.layout
	l.Width, l.Height = b.width, b.height
	l.Brushes = b.brushes()
	l.PlayerStarts = b.playerStarts()
	return l
}

// brushes - пол одним брашем и стены, склеенные в горизонтальные полосы.
func (b *LevelBuilder) brushes() []collision.Brush {
	out := []collision.Brush{{
		Mins:     domain.Vec3{0, 0, -FloorDepth},
		Maxs:     domain.Vec3{float64(b.width * TileSize), float64(b.height * TileSize), 0},
		Contents: domain.ContentsSolid,
	}}
	for y, row := range b.grid {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			out = append(out, collision.Brush{
				Mins:     domain.Vec3{float64(start * TileSize), float64(y * TileSize), 0},
				Maxs:     domain.Vec3{float64(x * TileSize), float64((y + 1) * TileSize), WallHeight},
				Contents: domain.ContentsSolid,
			})
		}
	}
	return out
}

// playerStarts - центр первой комнаты и свободные соседние тайлы.
func (b *LevelBuilder) playerStarts() []domain.Vec3 {
	if len(b.rooms) == 0 {
		return []domain.Vec3{tileCenter(b.width/2, b.height/2, playerZ)}
	}
	cx, cy := b.rooms[0].Center()
	var out []domain.Vec3
	for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if b.free(cx+d[0], cy+d[1]) {
			out = append(out, tileCenter(cx+d[0], cy+d[1], playerZ))
		}
	}
	return out
}

func (b *LevelBuilder) firstMonsterIn(room int) *MonsterSpawn {
	for i, r := range b.roomOf {
		if r == room {
			return &b.layout.Monsters[i]
		}
	}
	return nil
}

func (b *LevelBuilder) free(x, y int) bool {
	return y >= 0 && y < len(b.grid) && x >= 0 && x < len(b.grid[y]) && !b.grid[y][x]
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

func tileCenter(x, y int, z float64) domain.Vec3 {
	return domain.Vec3{(float64(x) + 0.5) * TileSize, (float64(y) + 0.5) * TileSize, z}
}

func patrolName(room, k int) string {
	return fmt.Sprintf("patrol%d_%d", room, k)
}
