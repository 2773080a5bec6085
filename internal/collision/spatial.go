package collision

import (
	"math"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
)

// DefaultCellSize - сторона ячейки сетки в мировых единицах.
const DefaultCellSize = 128

type cellKey struct {
	X, Y int
}

// SpatialHash - равномерная сетка по XY для быстрого поиска сущностей рядом с трассой.
// Сущность регистрируется во всех ячейках, которые покрывает её AbsMin/AbsMax.
type SpatialHash struct {
	cellSize float64
	cells    map[cellKey][]*domain.Entity
	owned    map[types.EntityID][]cellKey
}

func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*domain.Entity),
		owned:    make(map[types.EntityID][]cellKey),
	}
}

// GetIndex возвращает ячейку, в которую попадает точка.
func (h *SpatialHash) GetIndex(x, y float64) cellKey {
	return cellKey{
		X: int(math.Floor(x / h.cellSize)),
		Y: int(math.Floor(y / h.cellSize)),
	}
}

func (h *SpatialHash) span(mins, maxs domain.Vec3) (lo, hi cellKey) {
	return h.GetIndex(mins[0], mins[1]), h.GetIndex(maxs[0], maxs[1])
}

// AddEntity добавляет сущность в индекс по её текущим AbsMin/AbsMax.
func (h *SpatialHash) AddEntity(e *domain.Entity) {
	lo, hi := h.span(e.AbsMin, e.AbsMax)
	keys := h.owned[e.ID][:0]
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			k := cellKey{X: x, Y: y}
			h.cells[k] = append(h.cells[k], e)
			keys = append(keys, k)
		}
	}
	h.owned[e.ID] = keys
}

// RemoveEntity удаляет сущность из всех её ячеек.
func (h *SpatialHash) RemoveEntity(e *domain.Entity) {
	keys, ok := h.owned[e.ID]
	if !ok {
		return
	}
	for _, k := range keys {
		entities := h.cells[k]
		for i, other := range entities {
			if other == e {
				// Порядок внутри ячейки не важен: меняем с последним
				lastIdx := len(entities) - 1
				entities[i] = entities[lastIdx]
				entities[lastIdx] = nil
				entities = entities[:lastIdx]
				break
			}
		}
		if len(entities) == 0 {
			delete(h.cells, k)
		} else {
			h.cells[k] = entities
		}
	}
	delete(h.owned, e.ID)
}

// Query вызывает fn для каждой сущности из ячеек, покрывающих объём, ровно один раз.
// Обход прекращается, если fn вернула false.
func (h *SpatialHash) Query(mins, maxs domain.Vec3, fn func(e *domain.Entity) bool) {
	lo, hi := h.span(mins, maxs)
	single := lo == hi
	var seen map[*domain.Entity]struct{}
	if !single {
		seen = make(map[*domain.Entity]struct{})
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for _, e := range h.cells[cellKey{X: x, Y: y}] {
				if !single {
					if _, dup := seen[e]; dup {
						continue
					}
					seen[e] = struct{}{}
				}
				if !e.InUse {
					continue
				}
				if !fn(e) {
					return
				}
			}
		}
	}
}

// Len - число проиндексированных сущностей.
func (h *SpatialHash) Len() int {
	return len(h.owned)
}
