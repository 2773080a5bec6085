package systems

import (
	"testing"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerNoiseSlots(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{0, 0, standZ})
	a.setFrame(7)

	PlayerNoise(a.ctx, p, domain.Vec3{10, 20, 30}, NoiseWeapon)
	self := a.ctx.Entity(p.Client.NoiseSelf)
	require.NotNil(t, self)
	assert.Equal(t, "player_noise", self.ClassName)
	assert.Equal(t, p.ID, self.Owner)
	assert.Equal(t, domain.SolidNot, self.Solid)
	assert.Equal(t, domain.Vec3{10, 20, 30}, self.Origin)
	assert.Equal(t, self.ID, a.level.SoundEntity)
	assert.Equal(t, 7, a.level.SoundEntityFrame)
	assert.InDelta(t, 0.7, self.NoiseTime, 1e-9)

	PlayerNoise(a.ctx, p, domain.Vec3{-5, 0, 0}, NoiseImpact)
	impact := a.ctx.Entity(p.Client.NoiseImpact)
	require.NotNil(t, impact)
	assert.NotEqual(t, self.ID, impact.ID)
	assert.Equal(t, impact.ID, a.level.Sound2Entity)

	// Прокси переиспользуется
	inUse := a.pool.InUse()
	PlayerNoise(a.ctx, p, domain.Vec3{1, 1, 1}, NoiseSelf)
	assert.Equal(t, inUse, a.pool.InUse())
	assert.Equal(t, domain.Vec3{1, 1, 1}, self.Origin)
}

func TestPlayerNoiseIgnored(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{0, 0, standZ})
	p.Flags |= domain.FlagNoTarget

	PlayerNoise(a.ctx, p, p.Origin, NoiseSelf)
	assert.True(t, a.level.SoundEntity.IsNil())

	m := a.monster(t, domain.Vec3{200, 0, 30})
	PlayerNoise(a.ctx, m, m.Origin, NoiseSelf)
	assert.True(t, a.level.SoundEntity.IsNil(), "only players make noise")
}

func TestFreeNoise(t *testing.T) {
	a := newArena()
	p := a.player(t, domain.Vec3{0, 0, standZ})
	PlayerNoise(a.ctx, p, p.Origin, NoiseSelf)
	PlayerNoise(a.ctx, p, p.Origin, NoiseImpact)
	self, impact := p.Client.NoiseSelf, p.Client.NoiseImpact

	FreeNoise(a.ctx, p)
	assert.Nil(t, a.ctx.Entity(self))
	assert.Nil(t, a.ctx.Entity(impact))
	assert.Equal(t, types.NilEntityID, p.Client.NoiseSelf)
}

func TestSetSightClientRoundRobin(t *testing.T) {
	a := newArena()
	p1 := a.player(t, domain.Vec3{0, 0, standZ})
	p2 := a.player(t, domain.Vec3{100, 0, standZ})
	p3 := a.player(t, domain.Vec3{200, 0, standZ})
	p2.Health = 0

	var got []types.EntityID
	for i := 0; i < 4; i++ {
		SetSightClient(a.ctx)
		got = append(got, a.level.SightClient)
	}
	assert.Equal(t, []types.EntityID{p3.ID, p1.ID, p3.ID, p1.ID}, got)

	p1.Flags |= domain.FlagNoTarget
	p3.Health = 0
	SetSightClient(a.ctx)
	assert.True(t, a.level.SightClient.IsNil())
}
