package handlers

import (
	"encoding/json"
	"errors"

	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/systems"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
)

// Типы сообщений лога.
const (
	MsgInfo   = "INFO"
	MsgCombat = "COMBAT"
	MsgError  = "ERROR"
)

// ErrNoActor - команда требует игрока, а сессия ещё не вошла (или игрок удалён).
var ErrNoActor = errors.New("session has no player")

// PlayerRegistry выдаёт и забирает игроков по сессиям.
// Instance неявно реализует этот интерфейс.
type PlayerRegistry interface {
	SpawnPlayer(session, name string) (*domain.Entity, error)
	RemovePlayer(session string) bool
}

// MonsterSpawner создаёт монстров вне раскладки (чит SPAWN).
// CheckSpecies отвечает той же ошибкой, что и SpawnMonster для неизвестного вида.
type MonsterSpawner interface {
	CheckSpecies(name string) error
	SpawnMonster(spawn dungeon.MonsterSpawn) (*domain.Entity, error)
}

// Context передает хендлеру состояние мира.
// Хендлеры вызываются между тактами, поэтому могут свободно мутировать сущности.
type Context struct {
	Sim      *systems.Context
	Players  PlayerRegistry
	Monsters MonsterSpawner
	Session  string
	Actor    *domain.Entity // Игрок сессии; nil до INIT
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string         // Текст лога
	MsgType string         // Тип лога (INFO, COMBAT, ERROR)
	Entity  types.EntityID // Игрок, выданный сессии (INIT)
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
