package domain

import (
	"errors"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
)

// ErrPoolFull - в пуле не осталось свободных слотов.
var ErrPoolFull = errors.New("entity pool is full")

// reuseDelay - сколько секунд освобождённый слот отдыхает перед повторной выдачей,
// чтобы события о старой сущности не приписались новой.
const reuseDelay = 0.5

// Pool - арена сущностей фиксированной ёмкости.
//
// Раскладка слотов:
//
//	[0]                 - мир
//	[1..maxClients]     - игроки
//	[maxClients+1..]    - всё остальное
//
// Указатели на элементы стабильны (срез не растёт), но хранить их между
// тактами нельзя: держите types.EntityID и разыменовывайте через Get.
type Pool struct {
	slots      []Entity
	gens       []uint32
	maxClients int
	numInUse   int
}

// NewPool создаёт пул и занимает слот мира.
func NewPool(capacity, maxClients int) *Pool {
	if capacity < maxClients+2 {
		capacity = maxClients + 2
	}
	p := &Pool{
		slots:      make([]Entity, capacity),
		gens:       make([]uint32, capacity),
		maxClients: maxClients,
	}
	world := p.claim(0, enums.KindWorld)
	world.ClassName = "worldspawn"
	world.Solid = SolidBBox
	world.MoveType = enums.MoveTypeNone
	return p
}

func (p *Pool) claim(index int, kind enums.EntityKind) *Entity {
	p.gens[index] = types.NextGeneration(p.gens[index])
	e := &p.slots[index]
	*e = Entity{
		ID:    types.PackEntityID(uint8(kind), p.gens[index], uint32(index)),
		InUse: true,
		Kind:  kind,
	}
	p.numInUse++
	return e
}

// World возвращает сущность мира (слот 0).
func (p *Pool) World() *Entity {
	return &p.slots[0]
}

// Capacity - ёмкость пула.
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// MaxClients - число слотов под игроков.
func (p *Pool) MaxClients() int {
	return p.maxClients
}

// InUse - сколько слотов занято (включая мир).
func (p *Pool) InUse() int {
	return p.numInUse
}

// Spawn выдаёт свободный слот для не-игровой сущности.
// now - текущее время уровня: недавно освобождённые слоты пропускаются.
func (p *Pool) Spawn(kind enums.EntityKind, now float64) (*Entity, error) {
	for i := p.maxClients + 1; i < len(p.slots); i++ {
		e := &p.slots[i]
		if e.InUse {
			continue
		}
		// Слот, ни разу не выданный, можно брать сразу.
		if p.gens[i] != 0 && now >= reuseDelay && e.FreeTime > now-reuseDelay {
			continue
		}
		return p.claim(i, kind), nil
	}
	return nil, ErrPoolFull
}

// SpawnClient занимает первый свободный игровой слот.
func (p *Pool) SpawnClient() (*Entity, error) {
	for i := 1; i <= p.maxClients; i++ {
		if !p.slots[i].InUse {
			return p.claim(i, enums.KindPlayer), nil
		}
	}
	return nil, ErrPoolFull
}

// Free освобождает слот. Все выданные на него дескрипторы становятся недействительными.
func (p *Pool) Free(e *Entity, now float64) {
	if e == nil || !e.InUse {
		return
	}
	if e.ID.Index() == 0 {
		return // мир не освобождается
	}
	*e = Entity{FreeTime: now}
	p.numInUse--
}

// Get разыменовывает дескриптор. Возвращает nil для пустых, освобождённых
// и переиспользованных слотов.
func (p *Pool) Get(id types.EntityID) *Entity {
	if id.IsNil() {
		return nil
	}
	idx := int(id.Index())
	if idx >= len(p.slots) {
		return nil
	}
	e := &p.slots[idx]
	if !e.InUse || p.gens[idx] != id.Generation() {
		return nil
	}
	return e
}

// At возвращает слот по номеру (занятый или нет). Для обхода в порядке индексов.
func (p *Pool) At(index int) *Entity {
	return &p.slots[index]
}

// Each обходит занятые слоты в порядке индексов, пока fn возвращает true.
func (p *Pool) Each(fn func(e *Entity) bool) {
	for i := range p.slots {
		e := &p.slots[i]
		if !e.InUse {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// FindByTargetName собирает сущности с указанным targetname.
func (p *Pool) FindByTargetName(name string) []*Entity {
	if name == "" {
		return nil
	}
	var out []*Entity
	p.Each(func(e *Entity) bool {
		if e.TargetName == name {
			out = append(out, e)
		}
		return true
	})
	return out
}
