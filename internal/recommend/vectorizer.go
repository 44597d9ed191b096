package recommend

import (
	"math"
	"sort"
	"strings"
)

// Vectorizer es un TF-IDF clásico ajustado sobre el corpus del perfil.
// Vocabulario fijo después del Fit: los términos fuera de vocabulario
// transforman a peso cero (a propósito, no es un error).
type Vectorizer struct {
	Vocab map[string]int // término -> índice de columna
	Terms []string       // índice de columna -> término
	IDF   []float64
}

// tokenize parte un texto ya normalizado en términos. Se descartan tokens de
// un solo carácter, que solo meten ruido en la similitud.
func tokenize(text string) []string {
	var out []string
	for _, tok := range strings.Fields(normalizeText(text)) {
		if len([]rune(tok)) < 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// FitVectorizer ajusta vocabulario e IDF sobre el corpus. El vocabulario se
// ordena alfabéticamente para que dos Fit con el mismo corpus den exactamente
// el mismo vectorizador (el fingerprint del perfil depende de eso).
func FitVectorizer(corpus []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocab: make(map[string]int, len(terms)),
		Terms: terms,
		IDF:   make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		v.Vocab[term] = i
		// idf suavizado: nunca da cero ni divide por cero
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// Transform proyecta un documento al espacio del vocabulario ajustado:
// conteo de términos * IDF, normalizado a norma 2 unitaria.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.Terms))
	for _, term := range tokenize(doc) {
		if idx, ok := v.Vocab[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// MeanVector promedia fila a fila la matriz documento-término (el vector de
// perfil es la media aritmética de los vectores de cada libro).
func MeanVector(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	mean := make([]float64, len(rows[0]))
	for _, row := range rows {
		for i, val := range row {
			mean[i] += val
		}
	}
	n := float64(len(rows))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}
