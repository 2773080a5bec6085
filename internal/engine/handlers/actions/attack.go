package actions

import (
	"fmt"

	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// Оружие игрока: мгновенный выстрел.
const (
	PlayerDamage    = 15
	PlayerKnockback = 10
)

// HandleAttack - выстрел по направлению взгляда. Выстрел шумит у игрока,
// попадание шумит в точке удара: монстры слышат и то, и другое.
func HandleAttack(ctx handlers.Context, p api.AimPayload) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Health <= 0 {
		return handlers.Result{Msg: "Мёртвые не стреляют.", MsgType: handlers.MsgError}, nil
	}

	actor.Angles[domain.Pitch] = p.Pitch
	actor.Angles[domain.Yaw] = domain.AngleMod(p.Yaw)
	forward, _, _ := domain.AngleVectors(actor.Angles)

	sim := ctx.Sim
	tr := systems.FireHitscan(sim, actor, actor.EyePosition(), forward, PlayerDamage, PlayerKnockback)
	systems.PlayerNoise(sim, actor, actor.Origin, systems.NoiseWeapon)
	systems.PlayerNoise(sim, actor, tr.EndPos, systems.NoiseImpact)

	hit := sim.Entity(tr.Ent)
	if hit == nil || hit.TakeDamage == domain.DamageNo {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Попадание: %s (%d)", hit.ClassName, hit.Health),
		MsgType: handlers.MsgCombat,
	}, nil
}
