package domain

import (
	"github.com/iiroka/netquake2-sub002/internal/core/types"
)

// FrameTime - длительность такта симуляции в секундах.
const FrameTime = 0.1

// Level - состояние уровня, общее для всех сущностей.
// Слоты восприятия пишутся игровым слоем раз в такт и читаются поиском цели.
type Level struct {
	FrameNum int     `json:"frameNum"`
	Time     float64 `json:"time"`

	SightClient types.EntityID `json:"sightClient"`

	SightEntity      types.EntityID `json:"sightEntity"`
	SightEntityFrame int            `json:"sightEntityFrame"`

	SoundEntity      types.EntityID `json:"soundEntity"`
	SoundEntityFrame int            `json:"soundEntityFrame"`

	Sound2Entity      types.EntityID `json:"sound2Entity"`
	Sound2EntityFrame int            `json:"sound2EntityFrame"`

	TotalMonsters  int `json:"totalMonsters"`
	KilledMonsters int `json:"killedMonsters"`
}

// Advance переводит уровень на следующий такт.
// Время считается от номера кадра, чтобы не копить ошибку сложения.
func (l *Level) Advance() {
	l.FrameNum++
	l.Time = float64(l.FrameNum) / 10
}

// Fresh - был ли слот записан в этом или прошлом такте.
func (l *Level) Fresh(frame int) bool {
	return frame >= l.FrameNum-1
}
