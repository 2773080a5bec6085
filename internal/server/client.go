package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iiroka/netquake2-sub002/internal/engine"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Сессия выдаётся хабом при подключении; клиент сам её не выбирает.
type Client struct {
	Game    *engine.GameService
	Conn    *websocket.Conn
	Session string
	Updates <-chan api.ServerResponse

	log *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	session, updates := game.Hub.Register()
	return &Client{
		Game:    game,
		Conn:    conn,
		Session: session,
		Updates: updates,
		log:     logger.Component("ws").WithField("session", session),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		// Выход игрока и отписка; канал обновлений закроется и остановит writePump
		c.Game.Disconnect(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS error")
			}
			break
		}
		// Токен всегда от транспорта: чужой сессией не сыграть
		cmd.Token = c.Session
		if err := c.Game.ProcessCommand(cmd); err != nil {
			c.Game.Hub.SendTo(c.Session, api.ServerResponse{
				Type: api.MsgError,
				Logs: []api.LogEntry{{
					ID:        fmt.Sprintf("rej_%d", time.Now().UnixNano()),
					Text:      err.Error(),
					Type:      api.MsgError,
					Timestamp: time.Now().UnixMilli(),
				}},
			})
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
