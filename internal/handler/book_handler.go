package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"biblioteca-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(s *service.BookService) *BookHandler { return &BookHandler{svc: s} }

// @Summary Buscar libros en el catálogo externo
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param q query string true "palabra clave"
// @Param author query string false "filtrar por autor"
// @Param publisher query string false "filtrar por editorial"
// @Param lang query string false "idiomas separados por coma (default: es,en)"
// @Param order query string false "relevance|newest (default: relevance)"
// @Param page query int false "página (default: 1)"
// @Success 200 {object} service.SearchResult
// @Router /books/search [get]
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var langs []string
	if raw := r.URL.Query().Get("lang"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				langs = append(langs, l)
			}
		}
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	res, err := h.svc.Search(r.Context(), service.SearchParams{
		Query:     r.URL.Query().Get("q"),
		Author:    strings.TrimSpace(r.URL.Query().Get("author")),
		Publisher: strings.TrimSpace(r.URL.Query().Get("publisher")),
		Languages: langs,
		OrderBy:   r.URL.Query().Get("order"),
		Page:      page,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// @Summary Detalle de un libro
// @Description Base local primero, catálogo externo como fallback.
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param id path string true "googleId"
// @Success 200 {object} service.BookDetail
// @Router /books/{id} [get]
func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")
	detail, err := h.svc.Detail(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(detail)
}
