package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"biblioteca-backend/internal/service"

	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

func parseGroups(r *http.Request) []string {
	var groups []string
	if raw := r.URL.Query().Get("groups"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
	}
	return groups
}

// @Summary Recomendaciones para el usuario autenticado
// @Description Devuelve el lote de 3 que toca en esta visita. La tanda completa se cachea 48h y rota de a 3.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param groups query string false "grupos de género separados por coma (default: derivados de la biblioteca)"
// @Param refresh query bool false "si true, regenera aunque la caché esté fresca"
// @Success 200 {object} models.RecBatch
// @Failure 422 {string} string "perfil insuficiente"
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	refresh := r.URL.Query().Get("refresh") == "true"

	batch, err := h.svc.Recommend(r.Context(), userID, parseGroups(r), refresh)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientProfile) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(batch)
}

// @Summary Historial de tandas generadas
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default: 10)"
// @Success 200 {array} models.Recommendation
// @Router /me/recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hist, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(hist)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones con progreso (WebSocket)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param groups query string false "grupos de género separados por coma"
// @Success 200 {object} map[string]interface{}
// @Router /me/ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	userID := UserIDFromContext(r.Context())
	groups := parseGroups(r)

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, armando tu perfil de lectura...",
	})

	batch, err := h.svc.Recommend(r.Context(), userID, groups, false)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"batch":       batch,
		"generatedAt": time.Now(),
	})
}
