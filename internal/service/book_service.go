package service

import (
	"context"
	"fmt"
	"strings"

	"biblioteca-backend/internal/models"
	"biblioteca-backend/internal/repository"
)

const resultsPerPage = 12

// CatalogAPI es el catálogo externo visto desde la búsqueda de libros.
type CatalogAPI interface {
	Search(ctx context.Context, query, langRestrict string, maxResults int, orderBy string) ([]models.VolumeMetadata, error)
	GetVolume(ctx context.Context, id string) (*models.VolumeMetadata, error)
}

type BookService struct {
	books   *repository.BookRepository
	catalog CatalogAPI
}

func NewBookService(books *repository.BookRepository, catalog CatalogAPI) *BookService {
	return &BookService{books: books, catalog: catalog}
}

// ================== BÚSQUEDA EN CATÁLOGO ==================

type SearchParams struct {
	Query     string
	Author    string
	Publisher string
	Languages []string // default: es, en
	OrderBy   string   // relevance | newest
	Page      int
}

type SearchResult struct {
	Items      []models.VolumeMetadata `json:"items"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"totalPages"`
	TotalItems int                     `json:"totalItems"`
}

// Search proxea la búsqueda al catálogo externo, filtra volúmenes incompletos
// o en idiomas no pedidos y pagina de a 12.
func (s *BookService) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("ingresa una palabra clave para buscar libros")
	}
	if len(p.Languages) == 0 {
		p.Languages = []string{"es", "en"}
	}
	if p.OrderBy == "" {
		p.OrderBy = "relevance"
	}
	if p.Page <= 0 {
		p.Page = 1
	}

	q := p.Query
	if p.Author != "" {
		q += "+inauthor:" + p.Author
	}
	if p.Publisher != "" {
		q += "+inpublisher:" + p.Publisher
	}

	raw, err := s.catalog.Search(ctx, q, strings.Join(p.Languages, ","), 40, p.OrderBy)
	if err != nil {
		return nil, fmt.Errorf("error de conexión con el catálogo: %w", err)
	}

	langs := make(map[string]bool, len(p.Languages))
	for _, l := range p.Languages {
		langs[l] = true
	}

	var filtered []models.VolumeMetadata
	for i := range raw {
		v := &raw[i]
		if v.Incomplete() {
			continue
		}
		if !langs[v.Language] {
			continue
		}
		filtered = append(filtered, *v)
	}

	total := len(filtered)
	totalPages := (total + resultsPerPage - 1) / resultsPerPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (p.Page - 1) * resultsPerPage
	if start > total {
		start = total
	}
	end := start + resultsPerPage
	if end > total {
		end = total
	}

	return &SearchResult{
		Items:      filtered[start:end],
		Page:       p.Page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// ================== DETALLE ==================

type BookDetail struct {
	models.VolumeMetadata
	Source     string            `json:"source"` // "db" | "api"
	StoreLinks map[string]string `json:"storeLinks,omitempty"`
}

// Detail arma el detalle de un libro: primero la base local, si no está se
// consulta el catálogo. Con ISBN se generan links de búsqueda en librerías.
func (s *BookService) Detail(ctx context.Context, googleID string) (*BookDetail, error) {
	b, err := s.books.FindByGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}

	var detail BookDetail
	if b != nil {
		detail = BookDetail{
			VolumeMetadata: models.VolumeMetadata{
				ID:            b.GoogleID,
				Title:         b.Title,
				Authors:       splitAuthors(b.Author),
				Categories:    strings.Split(b.Categories, ","),
				Language:      b.Language,
				Description:   b.Description,
				Publisher:     b.Publisher,
				PublishedDate: b.PublishedDate,
				Thumbnail:     b.Thumbnail,
				ISBN:          b.ISBN,
			},
			Source: "db",
		}
	} else {
		vol, err := s.catalog.GetVolume(ctx, googleID)
		if err != nil {
			return nil, fmt.Errorf("no se pudo obtener los detalles del libro: %w", err)
		}
		detail = BookDetail{VolumeMetadata: *vol, Source: "api"}
	}

	if detail.ISBN != "" {
		detail.StoreLinks = map[string]string{
			"amazon":     "https://www.amazon.com.mx/s?k=" + detail.ISBN,
			"gandhi":     "https://www.gandhi.com.mx/search?query=" + detail.ISBN,
			"porrua":     "https://porrua.mx/catalogsearch/result/?q=" + detail.ISBN,
			"buscalibre": "https://www.buscalibre.com.mx/libros/search?q=" + detail.ISBN,
		}
	}
	return &detail, nil
}

func splitAuthors(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
