package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"biblioteca-backend/internal/models"
	"biblioteca-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type LibraryHandler struct {
	svc *service.LibraryService
}

func NewLibraryHandler(s *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: s}
}

type addBookRequest struct {
	BookID    string `json:"bookId"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Thumbnail string `json:"thumbnail"`
	Language  string `json:"language"`
	ISBN      string `json:"isbn"`
}

func (r *addBookRequest) toData() service.AddBookData {
	return service.AddBookData{
		GoogleID:  r.BookID,
		Title:     r.Title,
		Authors:   r.Authors,
		Thumbnail: r.Thumbnail,
		Language:  r.Language,
		ISBN:      r.ISBN,
	}
}

func addStatusFromErr(err error) int {
	switch {
	case errors.Is(err, service.ErrAlreadyInLibrary),
		errors.Is(err, service.ErrAlreadyInWishlist),
		errors.Is(err, service.ErrBookInLibrary):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ================== BIBLIOTECA ==================

// @Summary Listar biblioteca propia
// @Tags library
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BookDoc
// @Router /me/library [get]
func (h *LibraryHandler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	books, err := h.svc.ListLibrary(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.BookDoc{} // nunca null en JSON
	}
	_ = json.NewEncoder(w).Encode(books)
}

// @Summary Agregar libro a la biblioteca
// @Description Si el libro estaba en la wishlist, se mueve.
// @Tags library
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body addBookRequest true "datos del libro"
// @Success 201 {object} models.BookDoc
// @Failure 409 {string} string "ya está en tu biblioteca"
// @Router /me/library [post]
func (h *LibraryHandler) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.AddToLibrary(r.Context(), userID, req.toData())
	if err != nil {
		http.Error(w, err.Error(), addStatusFromErr(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

// @Summary Eliminar libro de la biblioteca
// @Tags library
// @Security BearerAuth
// @Param id path string true "googleId"
// @Success 200 {object} map[string]any
// @Failure 404 {string} string "el libro no existe"
// @Router /me/library/{id} [delete]
func (h *LibraryHandler) RemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	if err := h.svc.RemoveFromLibrary(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrBookNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"removed": true})
}

// ================== WISHLIST ==================

// @Summary Listar wishlist propia
// @Tags wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BookDoc
// @Router /me/wishlist [get]
func (h *LibraryHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	books, err := h.svc.ListWishlist(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.BookDoc{}
	}
	_ = json.NewEncoder(w).Encode(books)
}

// @Summary Agregar libro a la wishlist
// @Description Rechaza libros que ya están en la biblioteca.
// @Tags wishlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body addBookRequest true "datos del libro"
// @Success 201 {object} models.BookDoc
// @Failure 409 {string} string "ya está en biblioteca o wishlist"
// @Router /me/wishlist [post]
func (h *LibraryHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.AddToWishlist(r.Context(), userID, req.toData())
	if err != nil {
		http.Error(w, err.Error(), addStatusFromErr(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

// @Summary Eliminar libro de la wishlist
// @Tags wishlist
// @Security BearerAuth
// @Param id path string true "googleId"
// @Success 200 {object} map[string]any
// @Router /me/wishlist/{id} [delete]
func (h *LibraryHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	if err := h.svc.RemoveFromWishlist(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrBookNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"removed": true})
}
