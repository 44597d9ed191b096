package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"biblioteca-backend/internal/models"
)

// Client habla con la API de volúmenes de Google Books. Todas las llamadas
// son síncronas con timeout corto; el que llama decide qué hacer con un
// error (el motor de recomendaciones lo degrada a "sin resultados").
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// ===== forma del JSON de la API (solo lo que usamos) =====

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	Description         string               `json:"description"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type searchResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

// toMetadata valida y defaultea una sola vez en el borde, para no andar
// chequeando campos opcionales en la lógica de scoring.
func toMetadata(item *volumeItem) models.VolumeMetadata {
	v := item.VolumeInfo

	isbn := ""
	for _, id := range v.IndustryIdentifiers {
		if id.Type == "ISBN_13" || id.Type == "ISBN_10" {
			isbn = strings.TrimSpace(strings.ReplaceAll(id.Identifier, "-", ""))
			break
		}
	}

	return models.VolumeMetadata{
		ID:            item.ID,
		Title:         strings.TrimSpace(v.Title),
		Authors:       v.Authors,
		Categories:    v.Categories,
		Language:      strings.ToLower(v.Language),
		Description:   v.Description,
		Publisher:     strings.TrimSpace(v.Publisher),
		PublishedDate: v.PublishedDate,
		Thumbnail:     v.ImageLinks.Thumbnail,
		ISBN:          isbn,
	}
}

// Search consulta /volumes. Una respuesta no-200 se reporta como error igual
// que un fallo de transporte: para el motor las dos cosas valen lo mismo.
func (c *Client) Search(ctx context.Context, query, langRestrict string, maxResults int, orderBy string) ([]models.VolumeMetadata, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("printType", "books")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if langRestrict != "" {
		params.Set("langRestrict", langRestrict)
	}
	if orderBy != "" {
		params.Set("orderBy", orderBy)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books devolvió status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]models.VolumeMetadata, 0, len(body.Items))
	for i := range body.Items {
		out = append(out, toMetadata(&body.Items[i]))
	}
	return out, nil
}

// GetVolume trae un volumen puntual por id (detalle de libro).
func (c *Client) GetVolume(ctx context.Context, id string) (*models.VolumeMetadata, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	u := c.baseURL + "/volumes/" + url.PathEscape(id)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books devolvió status %d", resp.StatusCode)
	}

	var item volumeItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	meta := toMetadata(&item)
	return &meta, nil
}
