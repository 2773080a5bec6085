package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iiroka/netquake2-sub002/assets"
	"github.com/iiroka/netquake2-sub002/internal/collision"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/engine"
	"github.com/iiroka/netquake2-sub002/internal/species"
	"github.com/iiroka/netquake2-sub002/internal/version"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*engine.GameService, *httptest.Server) {
	t.Helper()
	reg, err := species.LoadFS(assets.Species, "species")
	require.NoError(t, err)

	layout := &dungeon.Layout{
		Brushes: []collision.Brush{{
			Mins:     domain.Vec3{-1024, -1024, -16},
			Maxs:     domain.Vec3{1024, 1024, 0},
			Contents: domain.ContentsSolid,
		}},
		PlayerStarts: []domain.Vec3{{0, 0, 25}},
		Monsters: []dungeon.MonsterSpawn{
			{Species: "soldier", Origin: domain.Vec3{400, 0, 48}, Yaw: 180},
		},
	}
	cfg := engine.NewConfig()
	cfg.Seed = 3
	cfg.MaxEntities = 64
	cfg.MaxClients = 4
	cfg.Tick = engine.Duration{Duration: 5 * time.Millisecond}

	inst, err := engine.NewInstance(0, cfg, reg, layout)
	require.NoError(t, err)
	svc := engine.NewService(inst)

	srv := httptest.NewServer(New(svc, 0).Handler())
	t.Cleanup(srv.Close)
	return svc, srv
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealthAndVersion(t *testing.T) {
	_, srv := newTestServer(t)

	code, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))

	code, body = get(t, srv.URL+"/version")
	require.Equal(t, http.StatusOK, code)
	var report version.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, "NQJR/1", report.Journal)
	assert.Equal(t, int64(3), report.Seed)
	assert.Contains(t, report.Species, "soldier")
}

func TestDebugEndpoints(t *testing.T) {
	svc, srv := newTestServer(t)
	require.NoError(t, svc.Step())

	code, body := get(t, srv.URL+"/debug/level")
	require.Equal(t, http.StatusOK, code)
	var level api.LevelView
	require.NoError(t, json.Unmarshal(body, &level))
	assert.Equal(t, 1, level.Frame)
	assert.Equal(t, 1, level.TotalMonsters)

	code, body = get(t, srv.URL+"/debug/entities?kind=monster")
	require.Equal(t, http.StatusOK, code)
	var monsters []api.EntityView
	require.NoError(t, json.Unmarshal(body, &monsters))
	require.Len(t, monsters, 1)
	assert.Equal(t, "monster_soldier", monsters[0].ClassName)

	code, body = get(t, srv.URL+"/debug/entities?kind=player")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))

	code, _ = get(t, srv.URL+"/debug/entities?kind=dragon")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = get(t, srv.URL+"/debug/sessions")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"subscribers":0}`, string(body))
}

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg api.ServerResponse
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestWebSocketSession(t *testing.T) {
	svc, srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Чужой токен игнорируется: сессию выдаёт сервер
	initPayload, err := json.Marshal(api.InitPayload{Name: "wsplayer"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "forged", Action: "INIT", Payload: initPayload}))

	welcome := readUntil(t, conn, api.MsgWelcome)
	require.NotEmpty(t, welcome.MyEntityID)

	update := readUntil(t, conn, api.MsgUpdate)
	assert.Equal(t, welcome.MyEntityID, update.MyEntityID)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "DANCE"}))
	rejected := readUntil(t, conn, api.MsgError)
	require.Len(t, rejected.Logs, 1)
	assert.Contains(t, rejected.Logs[0].Text, "unknown action")

	// После закрытия соединения игрок уходит с арены
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return svc.Hub.SubscriberCount() == 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		for _, e := range svc.Snapshot().Entities {
			if e.Kind == "PLAYER" {
				return false
			}
		}
		return true
	}, 2*time.Second, 5*time.Millisecond)
}
