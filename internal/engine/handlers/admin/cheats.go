package admin

import (
	"fmt"
	"strconv"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
)

const (
	defaultSpawnDist = 96
	smiteDamage      = 10000
	spawnLift        = 8 // монстра опустит на пол DropToFloor
)

// Коробка, которую проверяем перед появлением монстра.
var (
	spawnMins = domain.Vec3{-16, -16, -24}
	spawnMaxs = domain.Vec3{16, 16, 32}
)

// HandleGod переключает неуязвимость игрока.
func HandleGod(ctx handlers.Context) (handlers.Result, error) {
	ctx.Actor.Flags ^= domain.FlagGodMode
	return toggled("godmode", ctx.Actor.Flags.Has(domain.FlagGodMode)), nil
}

// HandleNoTarget переключает невидимость для монстров. Уже идущую погоню
// это не прерывает: монстр потеряет игрока, только когда сменит цель.
func HandleNoTarget(ctx handlers.Context) (handlers.Result, error) {
	ctx.Actor.Flags ^= domain.FlagNoTarget
	return toggled("notarget", ctx.Actor.Flags.Has(domain.FlagNoTarget)), nil
}

func toggled(name string, on bool) handlers.Result {
	status := "OFF"
	if on {
		status = "ON"
	}
	return handlers.Result{Msg: fmt.Sprintf("%s %s", name, status), MsgType: handlers.MsgInfo}
}

// HandleSpawn ставит монстра перед игроком лицом к нему.
func HandleSpawn(ctx handlers.Context, p api.SpawnPayload) (handlers.Result, error) {
	actor := ctx.Actor
	if err := ctx.Monsters.CheckSpecies(p.Species); err != nil {
		return handlers.Result{}, err
	}
	dist := p.Dist
	if dist == 0 {
		dist = defaultSpawnDist
	}

	yaw := actor.Angles[domain.Yaw]
	origin := actor.Origin.MA(dist, domain.YawVector(yaw))
	origin[2] += spawnLift

	tr := ctx.Sim.World.Trace(origin, spawnMins, spawnMaxs, origin, types.NilEntityID, domain.MaskMonsterSolid)
	if tr.StartSolid || tr.AllSolid {
		return handlers.Result{Msg: "Нет места для монстра.", MsgType: handlers.MsgError}, nil
	}

	ent, err := ctx.Monsters.SpawnMonster(dungeon.MonsterSpawn{
		Species: p.Species,
		Origin:  origin,
		Yaw:     domain.AngleMod(yaw + 180),
	})
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: fmt.Sprintf("Spawned %s", ent.ClassName), MsgType: handlers.MsgInfo}, nil
}

// HandleKill убивает цель уроном, который не переживёт никто, кроме бессмертных.
func HandleKill(ctx handlers.Context, p api.KillPayload) (handlers.Result, error) {
	raw, err := strconv.ParseUint(p.TargetID, 10, 64)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("bad target id %q: %w", p.TargetID, err)
	}
	target := ctx.Sim.Entity(types.EntityID(raw))
	if target == nil || target.TakeDamage == domain.DamageNo {
		return handlers.Result{Msg: "Target not found", MsgType: handlers.MsgError}, nil
	}

	systems.Damage(ctx.Sim, target, ctx.Actor, ctx.Actor, domain.Vec3{}, target.Origin, smiteDamage, 0)
	return handlers.Result{
		Msg:     fmt.Sprintf("Smited %s (%d)", target.ClassName, target.Health),
		MsgType: handlers.MsgCombat,
	}, nil
}
