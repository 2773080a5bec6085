package actions

import (
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
)

// HandleLeave убирает игрока сессии с арены.
func HandleLeave(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Players.RemovePlayer(ctx.Session) {
		return handlers.Result{Msg: "Игрок не найден.", MsgType: handlers.MsgError}, nil
	}
	return handlers.Result{Msg: "Игрок покидает арену.", MsgType: handlers.MsgInfo}, nil
}
