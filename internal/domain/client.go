package domain

import "github.com/iiroka/netquake2-sub002/internal/core/types"

// ClientInfo - компонент подключённого игрока.
type ClientInfo struct {
	Name    string `json:"name"`
	Session string `json:"session"`
	Armor   int    `json:"armor"`
	Score   int    `json:"score"`

	// Шумовые прокси игрока: собственный шум и шум попаданий.
	NoiseSelf   types.EntityID `json:"-"`
	NoiseImpact types.EntityID `json:"-"`
}
