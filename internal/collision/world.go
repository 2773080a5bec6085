package collision

import (
	"math"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DistEpsilon - на сколько трасса останавливается перед поверхностью.
const DistEpsilon = 0.03125

// Brush - статический объём мира, выровненный по осям.
type Brush struct {
	Mins     domain.Vec3     `json:"mins"`
	Maxs     domain.Vec3     `json:"maxs"`
	Contents domain.Contents `json:"contents"`
}

// World - мир столкновений: статические браши плюс связанные коробки сущностей.
// Реализует domain.Collider.
type World struct {
	pool    *domain.Pool
	brushes []Brush
	grid    *SpatialHash
	log     *logrus.Entry
}

var _ domain.Collider = (*World)(nil)

func NewWorld(pool *domain.Pool, brushes []Brush) *World {
	w := &World{
		pool:    pool,
		brushes: append([]Brush(nil), brushes...),
		grid:    NewSpatialHash(DefaultCellSize),
		log:     logger.Component("collision"),
	}
	w.log.WithField("brushes", len(brushes)).Debug("Collision world built")
	return w
}

// Trace протягивает коробку [mins,maxs] от start до end.
func (w *World) Trace(start, mins, maxs, end domain.Vec3, pass types.EntityID, mask domain.Contents) domain.Trace {
	tr := domain.Trace{Fraction: 1}
	delta := end.Sub(start)

	// --- Браши мира ---
	worldID := w.pool.World().ID
	for i := range w.brushes {
		b := &w.brushes[i]
		if b.Contents&mask == 0 {
			continue
		}
		clipBox(&tr, start, end, delta, b.Mins.Sub(maxs), b.Maxs.Sub(mins), worldID, b.Contents)
		if tr.AllSolid {
			tr.EndPos = start
			return tr
		}
	}

	// --- Сущности ---
	lo, hi := start, start
	for i := 0; i < 3; i++ {
		lo[i] = math.Min(start[i], end[i]) + mins[i] - 1
		hi[i] = math.Max(start[i], end[i]) + maxs[i] + 1
	}
	passEnt := w.pool.Get(pass)
	w.grid.Query(lo, hi, func(e *domain.Entity) bool {
		if e.Solid != domain.SolidBBox || e.ID == pass || e.ID.Index() == 0 {
			return true
		}
		if passEnt != nil && (e.Owner == pass || passEnt.Owner == e.ID) {
			return true
		}
		c := entityContents(e)
		if c&mask == 0 {
			return true
		}
		emins, emaxs := e.Box()
		clipBox(&tr, start, end, delta, emins.Sub(maxs), emaxs.Sub(mins), e.ID, c)
		return !tr.AllSolid
	})

	if tr.Fraction == 1 {
		tr.EndPos = end
	} else {
		tr.EndPos = start.MA(tr.Fraction, delta)
	}
	return tr
}

// entityContents - содержимое коробки сущности. Трупы отдельным типом,
// чтобы обычные трассы их не замечали.
func entityContents(e *domain.Entity) domain.Contents {
	if e.SvFlags.Has(domain.SvDeadMonster) {
		return domain.ContentsDeadMonster
	}
	return domain.ContentsMonster
}

func inside(p, lo, hi domain.Vec3) bool {
	return p[0] > lo[0] && p[0] < hi[0] &&
		p[1] > lo[1] && p[1] < hi[1] &&
		p[2] > lo[2] && p[2] < hi[2]
}

// clipBox пересекает луч start→end с расширенной (сумма Минковского) коробкой [lo,hi].
// Касание граней не считается пересечением.
func clipBox(tr *domain.Trace, start, end, delta, lo, hi domain.Vec3, id types.EntityID, contents domain.Contents) {
	if inside(start, lo, hi) {
		tr.StartSolid = true
		if inside(end, lo, hi) {
			tr.AllSolid = true
			tr.Fraction = 0
			tr.Ent = id
			tr.Contents = contents
		}
		return
	}

	enter, exit := math.Inf(-1), math.Inf(1)
	axis := -1
	for i := 0; i < 3; i++ {
		if delta[i] == 0 {
			if start[i] <= lo[i] || start[i] >= hi[i] {
				return
			}
			continue
		}
		t1 := (lo[i] - start[i]) / delta[i]
		t2 := (hi[i] - start[i]) / delta[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > enter {
			enter = t1
			axis = i
		}
		if t2 < exit {
			exit = t2
		}
	}
	if axis < 0 || enter >= exit || exit <= 0 || enter >= 1 {
		return
	}

	frac := enter - DistEpsilon/math.Abs(delta[axis])
	if frac < 0 {
		frac = 0
	}
	if frac >= tr.Fraction {
		return
	}

	var n domain.Vec3
	if delta[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	tr.Fraction = frac
	tr.Normal = n
	tr.Ent = id
	tr.Contents = contents
}

// PointContents объединяет содержимое всех брашей, содержащих точку.
func (w *World) PointContents(p domain.Vec3) domain.Contents {
	var c domain.Contents
	for i := range w.brushes {
		b := &w.brushes[i]
		if p[0] >= b.Mins[0] && p[0] <= b.Maxs[0] &&
			p[1] >= b.Mins[1] && p[1] <= b.Maxs[1] &&
			p[2] >= b.Mins[2] && p[2] <= b.Maxs[2] {
			c |= b.Contents
		}
	}
	return c
}

// LinkEntity пересчитывает абсолютные границы и перерегистрирует сущность.
func (w *World) LinkEntity(e *domain.Entity) {
	if e.Linked {
		w.grid.RemoveEntity(e)
	}
	one := domain.Vec3{1, 1, 1}
	e.AbsMin = e.Origin.Add(e.Mins).Sub(one)
	e.AbsMax = e.Origin.Add(e.Maxs).Add(one)
	e.Size = e.Maxs.Sub(e.Mins)
	e.LinkCount++
	e.Linked = true
	if e.Solid == domain.SolidNot {
		return
	}
	w.grid.AddEntity(e)
}

func (w *World) UnlinkEntity(e *domain.Entity) {
	if !e.Linked {
		return
	}
	w.grid.RemoveEntity(e)
	e.Linked = false
}

// AreaEntities возвращает сущности вида solid, пересекающие объём.
func (w *World) AreaEntities(mins, maxs domain.Vec3, solid domain.Solid) []*domain.Entity {
	var out []*domain.Entity
	w.grid.Query(mins, maxs, func(e *domain.Entity) bool {
		if e.Solid != solid {
			return true
		}
		if e.AbsMin[0] > maxs[0] || e.AbsMin[1] > maxs[1] || e.AbsMin[2] > maxs[2] ||
			e.AbsMax[0] < mins[0] || e.AbsMax[1] < mins[1] || e.AbsMax[2] < mins[2] {
			return true
		}
		out = append(out, e)
		return true
	})
	return out
}

// AreasConnected: в мире без порталов звук не проходит только сквозь толщу стены.
func (w *World) AreasConnected(a, b domain.Vec3) bool {
	return w.PointContents(a)&domain.ContentsSolid == 0 &&
		w.PointContents(b)&domain.ContentsSolid == 0
}
