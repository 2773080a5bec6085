package actions

import (
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// HandleNoise - игрок шумит там, где стоит.
func HandleNoise(ctx handlers.Context, p api.NoisePayload) (handlers.Result, error) {
	kind := systems.NoiseSelf
	if p.Kind == "impact" {
		kind = systems.NoiseImpact
	}
	systems.PlayerNoise(ctx.Sim, ctx.Actor, ctx.Actor.Origin, kind)
	return handlers.EmptyResult(), nil
}
