package domain

import "encoding/json"

// InternalCommand - команда игрока, поставленная в очередь инстанса.
// Применяется между тактами, никогда не посреди обхода сущностей.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Token   string          // Имя игрока (сессия)
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// JournalEntry - запись одной внешней команды в журнале.
type JournalEntry struct {
	Frame   int             `json:"frame"`
	Token   string          `json:"token"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Journal - все внешние команды партии. Вместе с сидом этого достаточно,
// чтобы воспроизвести симуляцию; состояние мира не сохраняется.
type Journal struct {
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Frames    int            `json:"frames"`
	Entries   []JournalEntry `json:"entries"`
}
