package models

// VolumeMetadata es el tipo de borde para los resultados del catálogo externo.
// Los campos faltantes se normalizan una sola vez acá (en lugar de chequear
// map[string]any por todos lados).
type VolumeMetadata struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Language      string   `json:"language,omitempty"`
	Description   string   `json:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	ISBN          string   `json:"isbn,omitempty"` // ISBN_13 o ISBN_10, sin guiones; "" si no hay
}

// Incomplete indica si el volumen no sirve ni para mostrar en búsqueda.
func (v *VolumeMetadata) Incomplete() bool {
	return v.Title == "" || len(v.Authors) == 0
}
