package actions

import (
	"github.com/iiroka/netquake2-sub002/internal/engine/handlers"
)

// HandleWait ничего не делает: мир и так идёт тактами. Нужен ботам и
// журналу, чтобы отметить живую сессию.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
