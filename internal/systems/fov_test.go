package systems

import (
	"math"
	"testing"

	"github.com/iiroka/netquake2-sub002/internal/collision"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRangeBoundaries(t *testing.T) {
	tests := []struct {
		dist float64
		want enums.Range
	}{
		{0, enums.RangeMelee},
		{79.999, enums.RangeMelee},
		{80, enums.RangeNear},
		{499.999, enums.RangeNear},
		{500, enums.RangeMid},
		{999.999, enums.RangeMid},
		{1000, enums.RangeFar},
		{5000, enums.RangeFar},
	}
	for _, tt := range tests {
		if got := rangeOf(tt.dist); got != tt.want {
			t.Errorf("rangeOf(%v) = %v, want %v", tt.dist, got, tt.want)
		}
	}
}

func TestRangeMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 3000).Draw(t, "a")
		b := rapid.Float64Range(0, 3000).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		if rangeOf(a) > rangeOf(b) {
			t.Fatalf("range(%v)=%v > range(%v)=%v", a, rangeOf(a), b, rangeOf(b))
		}
		if r := rangeOf(a); r > enums.RangeFar {
			t.Fatalf("unexpected category %v", r)
		}
	})
}

func TestInFrontBoundary(t *testing.T) {
	forward := domain.Vec3{0.3, 0.9, 0}
	delta := domain.Vec3{100, 0, 0}

	// Ровно на границе конуса - не спереди
	assert.False(t, inFrontOf(forward, delta))

	forward[0] = math.Nextafter(0.3, 1)
	assert.True(t, inFrontOf(forward, delta))
}

func TestInFront(t *testing.T) {
	self := &domain.Entity{}
	other := &domain.Entity{Origin: domain.Vec3{100, 0, 0}}

	assert.True(t, InFront(self, other))

	self.Angles[domain.Yaw] = 90
	assert.False(t, InFront(self, other), "target at right angle is outside the cone")

	self.Angles[domain.Yaw] = 60
	assert.True(t, InFront(self, other), "cos(60°) = 0.5 is inside the cone")

	self.Angles[domain.Yaw] = 180
	assert.False(t, InFront(self, other))
}

func TestPerceptionScenarioMid(t *testing.T) {
	a := newArena()
	self := &domain.Entity{ViewHeight: 25}
	enemy := &domain.Entity{Origin: domain.Vec3{600, 0, 0}, ViewHeight: 25}

	assert.Equal(t, enums.RangeMid, Range(self, enemy))
	assert.True(t, Visible(a.ctx, self, enemy))
	assert.True(t, InFront(self, enemy))
}

func TestVisibleBlockedByWall(t *testing.T) {
	a := newArena(collision.Brush{
		Mins:     domain.Vec3{300, -512, 0},
		Maxs:     domain.Vec3{316, 512, 256},
		Contents: domain.ContentsSolid,
	})
	self := a.monster(t, domain.Vec3{0, 0, 30})
	enemy := a.player(t, domain.Vec3{600, 0, standZ})

	assert.False(t, Visible(a.ctx, self, enemy))
	assert.False(t, Visible(a.ctx, enemy, self))

	// Монстры взгляд не перекрывают
	a.monster(t, domain.Vec3{100, 0, 30})
	enemy.Origin = domain.Vec3{200, 0, standZ}
	a.world.LinkEntity(enemy)
	assert.True(t, Visible(a.ctx, self, enemy))
}
