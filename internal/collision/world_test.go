package collision

import (
	"math"
	"os"
	"testing"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// floorWorld - пол толщиной 16 с верхом на z=0 и стена по x=[200,216].
func floorWorld() (*domain.Pool, *World) {
	pool := domain.NewPool(16, 1)
	w := NewWorld(pool, []Brush{
		{Mins: domain.Vec3{-1024, -1024, -16}, Maxs: domain.Vec3{1024, 1024, 0}, Contents: domain.ContentsSolid},
		{Mins: domain.Vec3{200, -1024, 0}, Maxs: domain.Vec3{216, 1024, 128}, Contents: domain.ContentsSolid},
		{Mins: domain.Vec3{-300, -300, 0}, Maxs: domain.Vec3{-200, -200, 40}, Contents: domain.ContentsWater},
	})
	return pool, w
}

var (
	boxMins = domain.Vec3{-16, -16, -24}
	boxMaxs = domain.Vec3{16, 16, 32}
)

func TestTrace_OpenSpace(t *testing.T) {
	_, w := floorWorld()
	start := domain.Vec3{0, 0, 25}
	end := domain.Vec3{100, 0, 25}

	tr := w.Trace(start, boxMins, boxMaxs, end, types.NilEntityID, domain.MaskMonsterSolid)

	assert.Equal(t, 1.0, tr.Fraction)
	assert.Equal(t, end, tr.EndPos)
	assert.False(t, tr.StartSolid)
	assert.True(t, tr.Ent.IsNil())
}

func TestTrace_HitsWall(t *testing.T) {
	pool, w := floorWorld()
	start := domain.Vec3{0, 0, 25}
	end := domain.Vec3{300, 0, 25}

	tr := w.Trace(start, boxMins, boxMaxs, end, types.NilEntityID, domain.MaskMonsterSolid)

	require.True(t, tr.Blocked())
	// Передняя грань коробки (x+16) встаёт за DistEpsilon до стены.
	assert.InDelta(t, 200-16-DistEpsilon, tr.EndPos[0], 1e-9)
	assert.Equal(t, domain.Vec3{-1, 0, 0}, tr.Normal)
	assert.Equal(t, pool.World().ID, tr.Ent)
}

func TestTrace_GroundProbe(t *testing.T) {
	_, w := floorWorld()
	start := domain.Vec3{0, 0, 24 + DistEpsilon}
	end := domain.Vec3{0, 0, 24 + DistEpsilon - 0.25}

	tr := w.Trace(start, boxMins, boxMaxs, end, types.NilEntityID, domain.MaskMonsterSolid)

	assert.Equal(t, 0.0, tr.Fraction)
	assert.Equal(t, domain.Vec3{0, 0, 1}, tr.Normal)
	assert.False(t, tr.StartSolid)
}

func TestTrace_StartSolid(t *testing.T) {
	_, w := floorWorld()
	// Центр глубоко в полу, конец тоже.
	tr := w.Trace(domain.Vec3{0, 0, -5}, domain.Vec3{}, domain.Vec3{}, domain.Vec3{10, 0, -5}, types.NilEntityID, domain.MaskSolid)
	assert.True(t, tr.StartSolid)
	assert.True(t, tr.AllSolid)
	assert.Equal(t, 0.0, tr.Fraction)

	// Выход из твёрдого наружу: начало внутри, но путь не блокируется.
	tr = w.Trace(domain.Vec3{0, 0, -5}, domain.Vec3{}, domain.Vec3{}, domain.Vec3{0, 0, 50}, types.NilEntityID, domain.MaskSolid)
	assert.True(t, tr.StartSolid)
	assert.False(t, tr.AllSolid)
	assert.Equal(t, 1.0, tr.Fraction)
}

func TestTrace_MaskFiltersWater(t *testing.T) {
	_, w := floorWorld()
	start := domain.Vec3{-250, -400, 20}
	end := domain.Vec3{-250, -100, 20}

	tr := w.Trace(start, domain.Vec3{}, domain.Vec3{}, end, types.NilEntityID, domain.MaskSolid)
	assert.Equal(t, 1.0, tr.Fraction, "water must not block solid traces")

	tr = w.Trace(start, domain.Vec3{}, domain.Vec3{}, end, types.NilEntityID, domain.MaskWater)
	assert.True(t, tr.Blocked())
	assert.Equal(t, domain.ContentsWater, tr.Contents)
}

func spawnBox(t *testing.T, pool *domain.Pool, w *World, origin domain.Vec3) *domain.Entity {
	t.Helper()
	e, err := pool.Spawn(enums.KindMonster, 0)
	require.NoError(t, err)
	e.Origin = origin
	e.Mins, e.Maxs = boxMins, boxMaxs
	e.Solid = domain.SolidBBox
	e.SvFlags |= domain.SvMonster
	w.LinkEntity(e)
	return e
}

func TestTrace_Entities(t *testing.T) {
	pool, w := floorWorld()
	mover := spawnBox(t, pool, w, domain.Vec3{0, 0, 25})
	blocker := spawnBox(t, pool, w, domain.Vec3{100, 0, 25})

	tr := w.Trace(mover.Origin, mover.Mins, mover.Maxs, domain.Vec3{180, 0, 25}, mover.ID, domain.MaskMonsterSolid)
	require.True(t, tr.Blocked())
	assert.Equal(t, blocker.ID, tr.Ent)
	assert.InDelta(t, 100-32-DistEpsilon, tr.EndPos[0], 1e-9)

	// Сам себя не блокирует.
	tr = w.Trace(blocker.Origin, blocker.Mins, blocker.Maxs, domain.Vec3{100, 50, 25}, blocker.ID, domain.MaskMonsterSolid)
	assert.Equal(t, 1.0, tr.Fraction)

	// Трупы видны только маскам с DeadMonster.
	blocker.SvFlags |= domain.SvDeadMonster
	tr = w.Trace(mover.Origin, mover.Mins, mover.Maxs, domain.Vec3{180, 0, 25}, mover.ID, domain.MaskMonsterSolid)
	assert.NotEqual(t, blocker.ID, tr.Ent)
	tr = w.Trace(mover.Origin, domain.Vec3{}, domain.Vec3{}, domain.Vec3{180, 0, 25}, mover.ID, domain.MaskShot)
	assert.Equal(t, blocker.ID, tr.Ent)
}

func TestTrace_OwnerSkipped(t *testing.T) {
	pool, w := floorWorld()
	shooter := spawnBox(t, pool, w, domain.Vec3{0, 0, 25})
	shot := spawnBox(t, pool, w, domain.Vec3{60, 0, 25})
	shot.Owner = shooter.ID

	tr := w.Trace(shooter.EyePosition(), domain.Vec3{}, domain.Vec3{}, domain.Vec3{150, 0, 25}, shooter.ID, domain.MaskShot)
	assert.Equal(t, 1.0, tr.Fraction)
}

func TestLinkEntity(t *testing.T) {
	pool, w := floorWorld()
	e := spawnBox(t, pool, w, domain.Vec3{10, 20, 30})

	assert.Equal(t, domain.Vec3{-7, 3, 5}, e.AbsMin)
	assert.Equal(t, domain.Vec3{27, 37, 63}, e.AbsMax)
	assert.Equal(t, domain.Vec3{32, 32, 56}, e.Size)
	assert.Equal(t, 1, e.LinkCount)
	assert.Equal(t, 1, w.grid.Len())

	e.Origin = domain.Vec3{500, 500, 30}
	w.LinkEntity(e)
	assert.Equal(t, 2, e.LinkCount)
	assert.Equal(t, 1, w.grid.Len())
	assert.Empty(t, w.AreaEntities(domain.Vec3{0, 0, 0}, domain.Vec3{40, 40, 60}, domain.SolidBBox))
	assert.Len(t, w.AreaEntities(domain.Vec3{480, 480, 0}, domain.Vec3{520, 520, 60}, domain.SolidBBox), 1)

	w.UnlinkEntity(e)
	assert.False(t, e.Linked)
	assert.Equal(t, 0, w.grid.Len())
}

func TestPointContents(t *testing.T) {
	_, w := floorWorld()
	assert.Equal(t, domain.ContentsSolid, w.PointContents(domain.Vec3{0, 0, -1}))
	// Граница включается.
	assert.Equal(t, domain.ContentsSolid, w.PointContents(domain.Vec3{0, 0, 0}))
	assert.Equal(t, domain.Contents(0), w.PointContents(domain.Vec3{0, 0, 1}))
	assert.Equal(t, domain.ContentsWater, w.PointContents(domain.Vec3{-250, -250, 20}))

	assert.True(t, w.AreasConnected(domain.Vec3{0, 0, 10}, domain.Vec3{100, 0, 10}))
	assert.False(t, w.AreasConnected(domain.Vec3{0, 0, 10}, domain.Vec3{208, 0, 10}))
}

// Трасса никогда не проходит дальше, чем было запрошено, и не начинает из стены.
func TestTrace_FractionBounds(t *testing.T) {
	_, w := floorWorld()
	rapid.Check(t, func(t *rapid.T) {
		start := domain.Vec3{
			rapid.Float64Range(-180, 180).Draw(t, "sx"),
			rapid.Float64Range(-500, 500).Draw(t, "sy"),
			rapid.Float64Range(25, 90).Draw(t, "sz"),
		}
		end := domain.Vec3{
			rapid.Float64Range(-400, 400).Draw(t, "ex"),
			rapid.Float64Range(-500, 500).Draw(t, "ey"),
			rapid.Float64Range(-50, 150).Draw(t, "ez"),
		}
		tr := w.Trace(start, boxMins, boxMaxs, end, types.NilEntityID, domain.MaskMonsterSolid)
		if tr.Fraction < 0 || tr.Fraction > 1 {
			t.Fatalf("fraction out of range: %v", tr.Fraction)
		}
		if tr.StartSolid {
			t.Fatalf("start %v is outside every brush", start)
		}
		// Конечная точка не внутри стены.
		if tr.EndPos[0]+16 > 200 && tr.EndPos[0]-16 < 216 && tr.EndPos[2]-24 < 128 {
			t.Fatalf("endpos %v penetrates the wall", tr.EndPos)
		}
		if tr.EndPos[2]-24 < -1e-9 && math.Abs(tr.EndPos[0]) < 1024 {
			t.Fatalf("endpos %v penetrates the floor", tr.EndPos)
		}
	})
}
