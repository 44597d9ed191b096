package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"biblioteca-backend/internal/models"
	"biblioteca-backend/internal/recommend"
)

const (
	// tamaño del lote que se entrega por visita
	BatchSize = 3
	// una tanda cacheada deja de servir después de esto
	CacheTTL = 48 * time.Hour
	// mínimo de libros en biblioteca para armar un perfil
	MinProfileBooks = 3
)

var ErrInsufficientProfile = errors.New("perfil insuficiente: agrega al menos 3 libros a tu biblioteca")

// BookSource entrega los libros que el usuario tiene en su biblioteca
// (no la wishlist). El motor nunca escribe en ese store.
type BookSource interface {
	OwnedBooks(ctx context.Context, userID int) ([]models.BookDoc, error)
}

// RecCache es la caché de sesión por usuario (Redis en producción, un map en
// los tests). Guarda la entrada completa: fingerprint, timestamp, tanda
// ordenada, cursor de rotación e ids ya mostrados.
type RecCache interface {
	Get(ctx context.Context, userID int, dest any) (bool, error)
	Set(ctx context.Context, userID int, value any, ttlSeconds int) error
	Delete(ctx context.Context, userID int) error
}

// HistoryStore persiste cada tanda generada (historial en Mongo). Puede ser
// nil: el historial nunca rompe la respuesta.
type HistoryStore interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	FindByUser(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error)
}

type RecommendService struct {
	books   BookSource
	cache   RecCache
	history HistoryStore
	catalog recommend.Searcher
	opts    recommend.FetchOptions
}

func NewRecommendService(books BookSource, cache RecCache, history HistoryStore, catalog recommend.Searcher) *RecommendService {
	return &RecommendService{
		books:   books,
		cache:   cache,
		history: history,
		catalog: catalog,
		opts:    recommend.DefaultFetchOptions(),
	}
}

// Recommend devuelve el lote de 3 que le toca al usuario en esta visita.
//
// Máquina de estados de la caché de sesión:
//   - FRESH (fingerprint coincide, cursor < largo, edad < TTL): se sirve la
//     siguiente rebanada desde caché, sin tocar el catálogo externo.
//   - EMPTY / STALE / EXHAUSTED: se reconstruye el perfil, se consulta el
//     catálogo y se guarda la tanda completa. shownIDs solo se reinicia si
//     cambió el fingerprint.
//
// refresh=true fuerza la regeneración aunque la caché esté fresca.
func (s *RecommendService) Recommend(ctx context.Context, userID int, selectedGroups []string, refresh bool) (*models.RecBatch, error) {
	books, err := s.books.OwnedBooks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(books) < MinProfileBooks {
		return nil, ErrInsufficientProfile
	}

	profile, vectorizer, fp := recommend.BuildProfile(books, selectedGroups)
	if profile == nil {
		// con selección de grupos muy restrictiva el corpus puede quedar vacío
		return nil, ErrInsufficientProfile
	}

	groups := selectedGroups
	if len(groups) == 0 {
		groups = deriveGroups(books)
	}

	var entry models.RecCacheEntry
	found, err := s.cache.Get(ctx, userID, &entry)
	if err != nil {
		// caché ilegible vale lo mismo que caché vencida
		log.Printf("[recommend] caché ilegible para usuario %d: %v", userID, err)
		found = false
	}

	if found && !refresh && s.isFresh(&entry, fp) {
		end := entry.Cursor + BatchSize
		if end > len(entry.Items) {
			end = len(entry.Items)
		}
		chunk := entry.Items[entry.Cursor:end]
		entry.Cursor = (entry.Cursor + BatchSize) % len(entry.Items)
		if err := s.cache.Set(ctx, userID, &entry, int(CacheTTL.Seconds())); err != nil {
			log.Printf("[recommend] error avanzando cursor para usuario %d: %v", userID, err)
		}
		log.Printf("[recommend] usuario %d recibió lote desde caché (cursor=%d)", userID, entry.Cursor)
		return &models.RecBatch{Books: chunk, Source: "cache"}, nil
	}

	// regenerar: shownIDs sobrevive mientras el perfil no cambie
	shown := make(map[string]bool)
	if found && entry.Fingerprint == fp {
		for _, id := range entry.ShownIDs {
			shown[id] = true
		}
	}

	items := recommend.FetchCandidates(ctx, profile, vectorizer, s.catalog, books, shown, groups, s.opts)
	if len(items) == 0 {
		// volver a EMPTY: sin entrada no hay rotación sobre datos viejos
		_ = s.cache.Delete(ctx, userID)
		log.Printf("[recommend] sin resultados útiles para perfil %s", fp)
		return &models.RecBatch{
			Books:   []models.Candidate{},
			Source:  "fresh",
			Message: "sin recomendaciones útiles por ahora, probá agregando más libros",
		}, nil
	}

	cursor := BatchSize
	if cursor > len(items) {
		cursor = len(items)
	}
	entry = models.RecCacheEntry{
		Fingerprint: fp,
		FetchedAt:   time.Now().UTC().Format(time.RFC3339),
		Items:       items,
		Cursor:      cursor,
		ShownIDs:    sortedKeys(shown),
	}
	if err := s.cache.Set(ctx, userID, &entry, int(CacheTTL.Seconds())); err != nil {
		log.Printf("[recommend] error cacheando tanda para usuario %d: %v", userID, err)
	}

	if s.history != nil {
		hist := &models.Recommendation{
			UserID:      userID,
			Fingerprint: fp,
			Groups:      groups,
			Items:       items,
			CreatedAt:   time.Now(),
		}
		if err := s.history.Insert(ctx, hist); err != nil {
			log.Printf("[recommend] error guardando historial en Mongo: %v", err)
		}
	}

	log.Printf("[recommend] %d libros generados para perfil %s (usuario %d)", len(items), fp, userID)
	return &models.RecBatch{Books: items[:cursor], Source: "fresh"}, nil
}

// History lista las últimas generaciones persistidas del usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if s.history == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.history.FindByUser(ctx, userID, limit)
}

// isFresh chequea fingerprint, cursor y edad. Timestamp que no parsea vale
// como vencido (se regenera en lugar de fallar).
func (s *RecommendService) isFresh(entry *models.RecCacheEntry, fp string) bool {
	if entry.Fingerprint != fp || len(entry.Items) == 0 {
		return false
	}
	if entry.Cursor < 0 || entry.Cursor >= len(entry.Items) {
		// EXHAUSTED: se trata igual que STALE
		return false
	}
	fetchedAt, err := time.Parse(time.RFC3339, entry.FetchedAt)
	if err != nil {
		return false
	}
	return time.Since(fetchedAt) < CacheTTL
}

// deriveGroups saca los grupos de género de la biblioteca del usuario cuando
// no hay selección explícita. "Other" no genera consultas al catálogo.
func deriveGroups(books []models.BookDoc) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range books {
		for _, g := range recommend.GroupsFor(books[i].Categories) {
			if g == recommend.GroupOther || seen[g] {
				continue
			}
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
