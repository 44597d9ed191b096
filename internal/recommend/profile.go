package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"biblioteca-backend/internal/models"
)

// bookDocument arma el documento de corpus de un libro: título, autores,
// categorías normalizadas, idioma, editorial y descripción limpia, todo en
// minúsculas y sin puntuación. El scorer usa exactamente la misma receta
// para los candidatos.
func bookDocument(title, author, rawCategories, language, publisher, description string) string {
	parts := []string{
		title,
		author,
		strings.Join(NormalizeRawCategories([]string{rawCategories}), " "),
		language,
		publisher,
		CleanDescription(description),
	}
	return normalizeText(strings.Join(parts, " "))
}

// qualifies decide si un libro participa del perfil: necesita autor,
// categoría e idioma no vacíos.
func qualifies(b *models.BookDoc) bool {
	return b.Author != "" && b.Categories != "" && b.Language != ""
}

// BuildProfile convierte la biblioteca del usuario en un único vector TF-IDF
// (la media de las filas del corpus) más un fingerprint estable de los
// insumos exactos. Si después de filtrar no queda corpus devuelve la terna
// nula: eso es "perfil insuficiente", no un error.
func BuildProfile(books []models.BookDoc, selectedGroups []string) ([]float64, *Vectorizer, string) {
	selected := make(map[string]bool, len(selectedGroups))
	for _, g := range selectedGroups {
		selected[g] = true
	}

	var corpus []string
	for i := range books {
		b := &books[i]
		if !qualifies(b) {
			continue
		}
		if len(selected) > 0 {
			match := false
			for _, g := range GroupsFor(b.Categories) {
				if selected[g] {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		corpus = append(corpus, bookDocument(
			b.Title, b.Author, b.Categories, b.Language, b.Publisher, b.Description))
	}

	if len(corpus) == 0 {
		return nil, nil, ""
	}

	vectorizer := FitVectorizer(corpus)
	rows := make([][]float64, len(corpus))
	for i, doc := range corpus {
		rows[i] = vectorizer.Transform(doc)
	}
	profile := MeanVector(rows)

	return profile, vectorizer, fingerprint(corpus, selectedGroups)
}

// fingerprint es un digest estable del corpus más la selección de grupos:
// mismo insumo, mismo hash; cualquier cambio en un libro o en la selección
// lo cambia. Se usa para invalidar la caché de recomendaciones.
func fingerprint(corpus []string, selectedGroups []string) string {
	groups := append([]string(nil), selectedGroups...)
	sort.Strings(groups)

	h := sha256.New()
	for _, doc := range corpus {
		h.Write([]byte(doc))
		h.Write([]byte{'\n'})
	}
	h.Write([]byte(strings.Join(groups, ",")))
	return hex.EncodeToString(h.Sum(nil))
}
