package domain

import "github.com/iiroka/netquake2-sub002/internal/core/types"

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=./mocks/collider_mock.go -package=mocks . Collider

// Collider - контракт мира столкновений, которым пользуется ИИ.
// Все запросы синхронные и без побочных эффектов, кроме Link/Unlink.
type Collider interface {
	// Trace протягивает коробку mins/maxs от start до end, игнорируя pass
	// и сущности, которыми pass владеет (или которые владеют им).
	Trace(start, mins, maxs, end Vec3, pass types.EntityID, mask Contents) Trace
	// PointContents - содержимое мира в точке.
	PointContents(p Vec3) Contents
	// LinkEntity пересчитывает AbsMin/AbsMax и регистрирует сущность в пространственном индексе.
	LinkEntity(e *Entity)
	// UnlinkEntity убирает сущность из индекса.
	UnlinkEntity(e *Entity)
	// AreaEntities возвращает сущности заданного вида столкновений, чьи коробки пересекают объём.
	AreaEntities(mins, maxs Vec3, solid Solid) []*Entity
	// AreasConnected - может ли звук пройти из a в b.
	AreasConnected(a, b Vec3) bool
}
