package dungeon

import (
	"math/rand"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10

	TileSize   = 64  // сторона тайла в мировых единицах
	WallHeight = 128 // высота стен
	FloorDepth = 16  // толщина пола под z=0
)

// Rect - Вспомогательная структура для комнаты (в тайлах)
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Inner возвращает крайние проходимые тайлы комнаты.
func (r Rect) Inner() (x0, y0, x1, y1 int) {
	return r.X + 1, r.Y + 1, r.X + r.W - 1, r.Y + r.H - 1
}

// Generate создает арену по сиду: комнаты, коридоры, монстры выбранных видов,
// патрули по path_corner, точки боя и одна зона урона.
func Generate(seed int64, species []string) *Layout {
	rng := rand.New(rand.NewSource(seed))
	return NewLevel(seed, rng).
		WithRooms(MaxRooms).
		SpawnMonsters(species, 2).
		WithPatrols(0.5).
		WithCombatPoints(0.5).
		WithHazard(5).
		Build()
}

// --- Вспомогательные функции ---

// grid[y][x] == true - стена.
func newGrid(width, height int) [][]bool {
	g := make([][]bool, height)
	for y := range g {
		row := make([]bool, width)
		for x := range row {
			row[x] = true
		}
		g[y] = row
	}
	return g
}

func createRoom(grid [][]bool, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			grid[y][x] = false
		}
	}
}

func createHCorridor(grid [][]bool, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		grid[y][x] = false
	}
}

func createVCorridor(grid [][]bool, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		grid[y][x] = false
	}
}
