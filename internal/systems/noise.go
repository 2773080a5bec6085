package systems

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
)

// NoiseType - чем нашумел игрок.
type NoiseType uint8

const (
	NoiseSelf   NoiseType = iota // шаги, голос
	NoiseWeapon                  // выстрел
	NoiseImpact                  // попадание в стену
)

var noiseSize = domain.Vec3{8, 8, 8}

// PlayerNoise записывает шум игрока в слоты уровня. Шум представлен
// сущностью-прокси, владелец которой - игрок; монстры идут к прокси.
func PlayerNoise(c *Context, who *domain.Entity, where domain.Vec3, kind NoiseType) {
	if who == nil || who.Client == nil {
		return
	}
	if who.Flags.Has(domain.FlagNoTarget) {
		return
	}

	var slot *types.EntityID
	if kind == NoiseImpact {
		slot = &who.Client.NoiseImpact
	} else {
		slot = &who.Client.NoiseSelf
	}

	noise := c.Entity(*slot)
	if noise == nil {
		var err error
		noise, err = spawnNoise(c, who)
		if err != nil {
			logger.Component("noise").WithError(err).Warn("Can't allocate noise proxy")
			return
		}
		*slot = noise.ID
	}

	lvl := c.Level
	if kind == NoiseImpact {
		lvl.Sound2Entity = noise.ID
		lvl.Sound2EntityFrame = lvl.FrameNum
	} else {
		lvl.SoundEntity = noise.ID
		lvl.SoundEntityFrame = lvl.FrameNum
	}

	noise.Origin = where
	noise.NoiseTime = c.Now()
	c.World.LinkEntity(noise)
}

func spawnNoise(c *Context, owner *domain.Entity) (*domain.Entity, error) {
	noise, err := c.Pool.Spawn(enums.KindNoise, c.Now())
	if err != nil {
		return nil, err
	}
	noise.ClassName = "player_noise"
	noise.Mins = noiseSize.Scale(-1)
	noise.Maxs = noiseSize
	noise.Owner = owner.ID
	noise.Solid = domain.SolidNot
	noise.SvFlags |= domain.SvNoClient
	return noise, nil
}

// SetSightClient выбирает следующего живого игрока по кругу.
// Каждый такт монстры "смотрят" на одного игрока, по очереди на всех.
func SetSightClient(c *Context) {
	maxClients := c.Pool.MaxClients()
	lvl := c.Level
	if maxClients == 0 {
		lvl.SightClient = types.NilEntityID
		return
	}

	start := 1
	if cur := c.Entity(lvl.SightClient); cur != nil {
		start = int(cur.ID.Index())
	}
	check := start
	for {
		check++
		if check > maxClients {
			check = 1
		}
		ent := c.Pool.At(check)
		if ent.InUse && ent.Health > 0 && !ent.Flags.Has(domain.FlagNoTarget) {
			lvl.SightClient = ent.ID
			return
		}
		if check == start {
			lvl.SightClient = types.NilEntityID
			return
		}
	}
}

// FreeNoise освобождает шумовые прокси игрока (при выходе).
func FreeNoise(c *Context, who *domain.Entity) {
	if who.Client == nil {
		return
	}
	for _, id := range []types.EntityID{who.Client.NoiseSelf, who.Client.NoiseImpact} {
		if e := c.Entity(id); e != nil {
			FreeEntity(c, e)
		}
	}
	who.Client.NoiseSelf = types.NilEntityID
	who.Client.NoiseImpact = types.NilEntityID
}
