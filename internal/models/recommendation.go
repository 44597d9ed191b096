package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate es un libro recomendado, ya puntuado contra el perfil del usuario.
type Candidate struct {
	ID            string   `json:"id" bson:"id"`
	Title         string   `json:"title" bson:"title"`
	Author        string   `json:"author" bson:"author"` // autores unidos por ", "
	Authors       []string `json:"authors" bson:"authors"`
	Language      string   `json:"language" bson:"language"`
	Thumbnail     string   `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Categories    []string `json:"categories" bson:"categories"`
	Description   string   `json:"description" bson:"description"`
	Publisher     string   `json:"publisher,omitempty" bson:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty" bson:"publishedDate,omitempty"`
	ISBN          string   `json:"isbn,omitempty" bson:"isbn,omitempty"`
	Similarity    float64  `json:"similarity" bson:"similarity"`
	MatchedGroup  string   `json:"matchedGroup,omitempty" bson:"matchedGroup,omitempty"`
	MatchedTerms  []string `json:"matchedTerms,omitempty" bson:"matchedTerms,omitempty"`
}

// RecCacheEntry es lo que se guarda en Redis por usuario: la tanda completa
// de candidatos ya ordenada, el cursor de rotación y los ids ya mostrados.
type RecCacheEntry struct {
	Fingerprint string      `json:"fingerprint"`
	FetchedAt   string      `json:"fetchedAt"` // RFC3339
	Items       []Candidate `json:"items"`
	Cursor      int         `json:"cursor"`
	ShownIDs    []string    `json:"shownIds"`
}

// RecBatch es la respuesta al cliente: el lote de 3 que toca en esta visita.
type RecBatch struct {
	Books   []Candidate `json:"books"`
	Source  string      `json:"source"` // "cache" | "fresh"
	Message string      `json:"message,omitempty"`
}

// Historial de generaciones (colección "recommendations" en Mongo).
type Recommendation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      int                `bson:"userId" json:"userId"`
	Fingerprint string             `bson:"fingerprint" json:"fingerprint"`
	Groups      []string           `bson:"groups" json:"groups"`
	Items       []Candidate        `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
