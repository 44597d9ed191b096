package models

// BookDoc es el registro persistido de un libro (colección "books").
// Se crea la primera vez que un usuario lo agrega a su biblioteca o wishlist
// y se completa con los metadatos del catálogo externo cuando aparecen.
type BookDoc struct {
	GoogleID      string `json:"googleId" bson:"googleId"`
	Title         string `json:"title" bson:"title"`
	Author        string `json:"author,omitempty" bson:"author,omitempty"`
	Categories    string `json:"categories,omitempty" bson:"categories,omitempty"`
	Language      string `json:"language,omitempty" bson:"language,omitempty"`
	ISBN          string `json:"isbn,omitempty" bson:"isbn,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Description   string `json:"description,omitempty" bson:"description,omitempty"`
	Publisher     string `json:"publisher,omitempty" bson:"publisher,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty" bson:"publishedDate,omitempty"`
	Source        string `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt     string `json:"createdAt" bson:"createdAt"`
	UpdatedAt     string `json:"updatedAt" bson:"updatedAt"`
}

// Membresía biblioteca/wishlist: un doc por (usuario, libro).
type MembershipDoc struct {
	UserID   int    `json:"userId" bson:"userId"`
	GoogleID string `json:"googleId" bson:"googleId"`
	AddedAt  string `json:"addedAt" bson:"addedAt"`
}
