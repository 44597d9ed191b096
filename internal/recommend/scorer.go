package recommend

import (
	"math"
	"sort"
	"strings"

	"biblioteca-backend/internal/models"
)

// ScoreCandidate proyecta un volumen del catálogo al espacio del vectorizador
// del perfil (misma receta de documento que el corpus) y devuelve la similitud
// coseno contra el vector de perfil, más los términos que más aportaron.
// Determinista: mismos insumos y mismo vectorizador, mismo score.
func ScoreCandidate(profile []float64, v *Vectorizer, vol *models.VolumeMetadata) (float64, []string) {
	doc := bookDocument(
		vol.Title,
		strings.Join(vol.Authors, " "),
		strings.Join(vol.Categories, ", "),
		vol.Language,
		vol.Publisher,
		vol.Description,
	)
	vec := v.Transform(doc)
	return cosine(profile, vec), matchedTerms(profile, vec, v, 5)
}

// cosine calcula la similitud coseno entre dos vectores densos del mismo
// largo. Vector nulo da 0, el resultado queda en [0,1] porque los pesos
// TF-IDF no son negativos.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// matchedTerms lista los términos presentes en perfil y candidato a la vez,
// ordenados por contribución al producto punto, hasta `limit`.
func matchedTerms(profile, candidate []float64, v *Vectorizer, limit int) []string {
	type contrib struct {
		term   string
		weight float64
	}
	var matched []contrib
	for i := range profile {
		if profile[i] > 0 && candidate[i] > 0 {
			matched = append(matched, contrib{v.Terms[i], profile[i] * candidate[i]})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].weight > matched[j].weight })

	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]string, len(matched))
	for i, m := range matched {
		out[i] = m.term
	}
	return out
}
