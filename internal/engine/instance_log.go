package engine

import (
	"fmt"
	"time"

	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет лог в историю инстанса
func (i *Instance) AddLog(text, logType string) {
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d_%d", i.ID, i.Level.FrameNum, len(i.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"instance":  i.ID,
		"component": "game_log",
		"log_type":  logType,
		"frame":     i.Level.FrameNum,
	}).Info(text)
}

// DrainLogs забирает накопленные записи.
func (i *Instance) DrainLogs() []api.LogEntry {
	out := i.Logs
	i.Logs = []api.LogEntry{}
	return out
}
