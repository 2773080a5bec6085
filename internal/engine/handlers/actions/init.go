package actions

import (
	"fmt"

	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// HandleInit выдаёт сессии игрока на точке старта.
func HandleInit(ctx handlers.Context, p api.InitPayload) (handlers.Result, error) {
	if ctx.Actor != nil {
		return handlers.Result{
			Msg:     "Вы уже на арене.",
			MsgType: handlers.MsgError,
			Entity:  ctx.Actor.ID,
		}, nil
	}

	player, err := ctx.Players.SpawnPlayer(ctx.Session, p.Name)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("spawn player %q: %w", p.Name, err)
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s выходит на арену.", p.Name),
		MsgType: handlers.MsgInfo,
		Entity:  player.ID,
	}, nil
}
