package engine

import (
	"errors"
	"fmt"

	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrAlreadyJoined  = errors.New("session already has a player")
)

// Параметры игрока.
const (
	playerHealth     = 100
	playerViewHeight = 22
	playerLight      = 128
	playerMass       = 200
)

var (
	playerMins = domain.Vec3{-16, -16, -24}
	playerMaxs = domain.Vec3{16, 16, 32}
	markerSize = domain.Vec3{8, 8, 8}
)

// spawnLayout расставляет сущности раскладки. Точки маршрутов идут первыми:
// монстры при появлении ищут свои цели по имени.
func (i *Instance) spawnLayout() error {
	for _, m := range i.Layout.Markers {
		if _, err := i.spawnMarker(m); err != nil {
			return err
		}
	}
	for _, h := range i.Layout.Hazards {
		if _, err := i.spawnHazard(h); err != nil {
			return err
		}
	}
	for _, m := range i.Layout.Monsters {
		if _, err := i.SpawnMonster(m); err != nil {
			return err
		}
	}
	return nil
}

// SpawnMonster создаёт монстра зарегистрированного вида.
func (i *Instance) SpawnMonster(spawn dungeon.MonsterSpawn) (*domain.Entity, error) {
	sp, ok := i.Species.Get(spawn.Species)
	if !ok {
		return nil, unknownSpecies(spawn.Species)
	}
	ent, err := i.Pool.Spawn(enums.KindMonster, i.Level.Time)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", spawn.Species, err)
	}
	ent.Origin = spawn.Origin
	ent.Angles[domain.Yaw] = spawn.Yaw
	ent.Target = spawn.Target
	ent.CombatTarget = spawn.CombatTarget
	ent.SpawnFlags = spawn.SpawnFlags

	systems.StartMonster(i.Ctx, ent, sp)
	return ent, nil
}

// CheckSpecies проверяет, что вид загружен.
func (i *Instance) CheckSpecies(name string) error {
	if _, ok := i.Species.Get(name); !ok {
		return unknownSpecies(name)
	}
	return nil
}

func unknownSpecies(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}

func (i *Instance) spawnMarker(m dungeon.MarkerSpawn) (*domain.Entity, error) {
	ent, err := i.Pool.Spawn(m.Kind, i.Level.Time)
	if err != nil {
		return nil, fmt.Errorf("spawn %s %q: %w", m.Kind, m.TargetName, err)
	}
	ent.Origin = m.Origin
	ent.Mins = markerSize.Scale(-1)
	ent.Maxs = markerSize
	ent.Solid = domain.SolidTrigger
	ent.SvFlags |= domain.SvNoClient
	ent.TargetName = m.TargetName
	ent.Target = m.Target
	ent.Wait = m.Wait
	ent.SpawnFlags = m.SpawnFlags

	switch m.Kind {
	case enums.KindPathCorner:
		ent.ClassName = "path_corner"
		ent.Touch = domain.TouchPathCorner
	case enums.KindCombatPoint:
		ent.ClassName = "point_combat"
		ent.Touch = domain.TouchPointCombat
	default:
		i.Pool.Free(ent, i.Level.Time)
		return nil, fmt.Errorf("marker %q: unsupported kind %s", m.TargetName, m.Kind)
	}
	i.World.LinkEntity(ent)
	return ent, nil
}

func (i *Instance) spawnHazard(h dungeon.HazardSpawn) (*domain.Entity, error) {
	ent, err := i.Pool.Spawn(enums.KindTrigger, i.Level.Time)
	if err != nil {
		return nil, fmt.Errorf("spawn trigger_hurt: %w", err)
	}
	ent.ClassName = "trigger_hurt"
	ent.Origin = h.Mins.Add(h.Maxs).Scale(0.5)
	ent.Mins = h.Mins.Sub(ent.Origin)
	ent.Maxs = h.Maxs.Sub(ent.Origin)
	ent.Solid = domain.SolidTrigger
	ent.SvFlags |= domain.SvNoClient
	ent.Touch = domain.TouchHurt
	ent.Dmg = h.Dmg
	ent.SpawnFlags = h.SpawnFlags
	i.World.LinkEntity(ent)
	return ent, nil
}

// --- Игроки ---

// SpawnPlayer выдаёт сессии игрока на следующей точке старта.
func (i *Instance) SpawnPlayer(session, name string) (*domain.Entity, error) {
	if i.Player(session) != nil {
		return nil, ErrAlreadyJoined
	}
	ent, err := i.Pool.SpawnClient()
	if err != nil {
		return nil, err
	}

	ent.ClassName = "player"
	ent.Client = &domain.ClientInfo{Name: name, Session: session}
	ent.Origin = i.nextPlayerStart()
	ent.Mins, ent.Maxs = playerMins, playerMaxs
	ent.Solid = domain.SolidBBox
	ent.ClipMask = domain.MaskPlayerSolid
	ent.MoveType = enums.MoveTypeWalk
	ent.Health, ent.MaxHealth = playerHealth, playerHealth
	ent.TakeDamage = domain.DamageAim
	ent.ViewHeight = playerViewHeight
	ent.LightLevel = playerLight
	ent.Mass = playerMass

	i.World.LinkEntity(ent)
	systems.DropToFloor(i.Ctx, ent)
	i.players[session] = ent.ID

	i.Ctx.Emit(domain.Event{Kind: domain.EventSpawn, Entity: ent.ID, Origin: ent.Origin})
	i.log.WithFields(logrus.Fields{
		"session": session,
		"name":    name,
		"entity":  ent.ID,
	}).Info("Player joined")
	return ent, nil
}

// RemovePlayer убирает игрока сессии вместе с его шумовыми прокси.
func (i *Instance) RemovePlayer(session string) bool {
	ent := i.Player(session)
	delete(i.players, session)
	if ent == nil {
		return false
	}
	systems.FreeNoise(i.Ctx, ent)
	systems.FreeEntity(i.Ctx, ent)
	i.log.WithField("session", session).Info("Player left")
	return true
}

func (i *Instance) nextPlayerStart() domain.Vec3 {
	starts := i.Layout.PlayerStarts
	if len(starts) == 0 {
		return domain.Vec3{0, 0, playerMaxs[2]}
	}
	p := starts[i.nextStart%len(starts)]
	i.nextStart++
	return p
}
