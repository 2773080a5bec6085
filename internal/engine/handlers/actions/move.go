package actions

import (
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// playerStep - длина одного шага игрока: длинный ход режется на шаги,
// чтобы не перепрыгивать тонкие препятствия.
const playerStep = 16

func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Health <= 0 {
		return handlers.Result{Msg: "Мёртвые не ходят.", MsgType: handlers.MsgError}, nil
	}

	yaw := domain.AngleMod(p.Yaw)
	actor.Angles[domain.Yaw] = yaw
	actor.IdealYaw = yaw

	moved := 0.0
	for moved < p.Dist {
		step := min(playerStep, p.Dist-moved)
		if !systems.WalkMove(ctx.Sim, actor, yaw, step) {
			break
		}
		moved += step
	}

	if moved == 0 {
		return handlers.Result{Msg: "Путь прегражден.", MsgType: handlers.MsgError}, nil
	}
	return handlers.EmptyResult(), nil
}
