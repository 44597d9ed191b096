package recommend

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"biblioteca-backend/internal/models"
)

// Searcher es el catálogo externo visto desde el fetcher. La implementación
// real vive en internal/catalog; los tests usan un fake.
type Searcher interface {
	Search(ctx context.Context, query, langRestrict string, maxResults int, orderBy string) ([]models.VolumeMetadata, error)
}

// Idiomas soportados: se consulta el catálogo una vez por frase en cada uno.
var SupportedLanguages = []string{"es", "en"}

type FetchOptions struct {
	MaxPerQuery   int     // ítems por llamada al catálogo
	MinSimilarity float64 // umbral: por debajo se descarta, no se devuelve con score bajo
}

func DefaultFetchOptions() FetchOptions {
	return FetchOptions{MaxPerQuery: 40, MinSimilarity: 0.25}
}

// FetchCandidates consulta el catálogo por cada frase representativa de los
// grupos seleccionados (en español e inglés), deduplica, filtra contra las
// reglas de negocio y puntúa lo que sobrevive contra el vector de perfil.
// Una llamada fallida al catálogo vale "sin resultados" para ese par
// (frase, idioma) y no aborta el fetch completo.
//
// shownIDs se muta: los ids de libros propios se siembran antes de filtrar y
// cada candidato aceptado se agrega.
func FetchCandidates(
	ctx context.Context,
	profile []float64,
	vectorizer *Vectorizer,
	catalog Searcher,
	ownedBooks []models.BookDoc,
	shownIDs map[string]bool,
	selectedGroups []string,
	opts FetchOptions,
) []models.Candidate {

	if profile == nil || len(selectedGroups) == 0 {
		return nil
	}
	if opts.MaxPerQuery <= 0 {
		opts.MaxPerQuery = 40
	}

	// los libros que el usuario ya tiene nunca se recomiendan
	for i := range ownedBooks {
		if id := normalizeID(ownedBooks[i].GoogleID); id != "" {
			shownIDs[id] = true
		}
	}

	selected := make(map[string]bool, len(selectedGroups))
	for _, g := range selectedGroups {
		selected[g] = true
	}

	type fetched struct {
		vol   models.VolumeMetadata
		group string
	}
	var items []fetched
	for _, group := range selectedGroups {
		for _, phrase := range GroupPhrases(group) {
			for _, lang := range SupportedLanguages {
				query := fmt.Sprintf("subject:%q", phrase)
				vols, err := catalog.Search(ctx, query, lang, opts.MaxPerQuery, "relevance")
				if err != nil {
					log.Printf("[recommend] catálogo falló para (%q, %s): %v", phrase, lang, err)
					continue
				}
				for _, v := range vols {
					items = append(items, fetched{vol: v, group: group})
				}
			}
		}
	}

	seenTitleAuthor := make(map[string]bool)
	seenISBN := make(map[string]bool)
	var results []models.Candidate

	for i := range items {
		vol := &items[i].vol
		id := normalizeID(vol.ID)

		// (a) ya mostrado (o ya en la biblioteca)
		if id == "" || shownIDs[id] {
			continue
		}

		// (b) duplicado por (título, autores) dentro de este fetch
		dedupKey := titleAuthorKey(vol.Title, vol.Authors)
		if seenTitleAuthor[dedupKey] {
			continue
		}

		// (c) incompleto para recomendar
		if len(vol.Authors) == 0 || vol.Description == "" {
			continue
		}

		// (d) ninguna de sus categorías cae en los grupos seleccionados
		categories := NormalizeRawCategories(vol.Categories)
		matchedGroup := ""
		for _, cat := range categories {
			if g := MapToGroup(cat); selected[g] {
				matchedGroup = g
				break
			}
		}
		if matchedGroup == "" {
			continue
		}

		// (e) idioma fuera de los soportados
		if !supportedLanguage(vol.Language) {
			continue
		}

		// (f) ISBN repetido dentro de este fetch
		if vol.ISBN != "" && seenISBN[vol.ISBN] {
			continue
		}

		score, terms := ScoreCandidate(profile, vectorizer, vol)
		if score < opts.MinSimilarity {
			continue
		}

		results = append(results, models.Candidate{
			ID:            id,
			Title:         vol.Title,
			Author:        strings.Join(vol.Authors, ", "),
			Authors:       vol.Authors,
			Language:      vol.Language,
			Thumbnail:     vol.Thumbnail,
			Categories:    categories,
			Description:   vol.Description,
			Publisher:     vol.Publisher,
			PublishedDate: vol.PublishedDate,
			ISBN:          vol.ISBN,
			Similarity:    math.Round(score*1000) / 1000,
			MatchedGroup:  matchedGroup,
			MatchedTerms:  terms,
		})

		shownIDs[id] = true
		seenTitleAuthor[dedupKey] = true
		if vol.ISBN != "" {
			seenISBN[vol.ISBN] = true
		}
	}

	// orden estable: empates quedan en el orden en que los devolvió el catálogo
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	log.Printf("[recommend] %d candidatos tras filtrar y puntuar (%d grupos)", len(results), len(selectedGroups))
	return results
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// titleAuthorKey arma la clave de dedup: título en minúsculas + conjunto de
// autores normalizado (el orden de los autores no importa).
func titleAuthorKey(title string, authors []string) string {
	norm := make([]string, 0, len(authors))
	for _, a := range authors {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			norm = append(norm, a)
		}
	}
	sort.Strings(norm)
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.Join(norm, ";")
}

func supportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if lang == l {
			return true
		}
	}
	return false
}
