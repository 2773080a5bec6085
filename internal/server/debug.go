package server

import (
	"encoding/json"
	"net/http"

	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/engine"
	"github.com/iiroka/netquake2-sub002/pkg/api"
)

// DebugHandler отдаёт последний снимок симуляции.
// Живые структуры движка отсюда не читаются: они принадлежат горутине тактов.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/sessions", h.handleSessions)
}

// /debug/level - номер кадра, слоты восприятия, счётчики монстров
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Snapshot().Level)
}

// /debug/entities?kind=monster - игроки и монстры, по желанию одного вида
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	entities := h.Service.Snapshot().Entities
	kindStr := r.URL.Query().Get("kind")
	if kindStr == "" {
		writeJSON(w, entities)
		return
	}
	kind, ok := enums.ParseEntityKind(kindStr)
	if !ok {
		http.Error(w, "unknown entity kind", http.StatusBadRequest)
		return
	}

	filtered := []api.EntityView{}
	for _, e := range entities {
		if e.Kind == kind.String() {
			filtered = append(filtered, e)
		}
	}
	writeJSON(w, filtered)
}

// /debug/sessions - число подписчиков хаба
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"subscribers": h.Service.Hub.SubscriberCount()})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
