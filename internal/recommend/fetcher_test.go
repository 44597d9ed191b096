package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"biblioteca-backend/internal/models"
)

type searchCall struct {
	query, lang, orderBy string
	maxResults           int
}

// fakeSearcher devuelve la misma lista para cada consulta (o un error por
// idioma, si failLang está seteado) y registra todas las llamadas.
type fakeSearcher struct {
	vols     []models.VolumeMetadata
	failLang string
	calls    []searchCall
}

func (f *fakeSearcher) Search(_ context.Context, query, lang string, maxResults int, orderBy string) ([]models.VolumeMetadata, error) {
	f.calls = append(f.calls, searchCall{query, lang, orderBy, maxResults})
	if f.failLang != "" && lang == f.failLang {
		return nil, errors.New("catálogo caído")
	}
	return f.vols, nil
}

// perfilDePrueba arma un perfil de un solo libro, para que un candidato con
// los mismos campos puntúe similitud 1.
func perfilDePrueba() ([]float64, *Vectorizer, models.BookDoc) {
	book := libroPerfil("owned-1", "Cien años de soledad")
	profile, v, _ := BuildProfile([]models.BookDoc{book}, nil)
	return profile, v, book
}

func volumenComo(b models.BookDoc, id string) models.VolumeMetadata {
	return models.VolumeMetadata{
		ID:          id,
		Title:       b.Title,
		Authors:     []string{b.Author},
		Categories:  []string{b.Categories},
		Language:    b.Language,
		Publisher:   b.Publisher,
		Description: b.Description,
		ISBN:        "9781111111111",
	}
}

func TestFetchCandidatesSinPerfilNiGrupos(t *testing.T) {
	cat := &fakeSearcher{}

	got := FetchCandidates(context.Background(), nil, nil, cat, nil,
		map[string]bool{}, []string{"Fiction"}, DefaultFetchOptions())
	if got != nil {
		t.Errorf("sin perfil debe devolver nil, devolvió %d", len(got))
	}

	profile, v, _ := perfilDePrueba()
	got = FetchCandidates(context.Background(), profile, v, cat, nil,
		map[string]bool{}, nil, DefaultFetchOptions())
	if got != nil {
		t.Errorf("sin grupos seleccionados debe devolver nil, devolvió %d", len(got))
	}

	if len(cat.calls) != 0 {
		t.Errorf("no debería haber tocado el catálogo, hizo %d llamadas", len(cat.calls))
	}
}

func TestFetchCandidatesConsultaPorFraseEIdioma(t *testing.T) {
	profile, v, _ := perfilDePrueba()
	cat := &fakeSearcher{}

	FetchCandidates(context.Background(), profile, v, cat, nil,
		map[string]bool{}, []string{"Poetry"}, DefaultFetchOptions())

	phrases := GroupPhrases("Poetry")
	want := len(phrases) * len(SupportedLanguages)
	if len(cat.calls) != want {
		t.Fatalf("hizo %d llamadas, quería %d (frases x idiomas)", len(cat.calls), want)
	}

	porIdioma := map[string]int{}
	for _, c := range cat.calls {
		porIdioma[c.lang]++
		if c.orderBy != "relevance" {
			t.Errorf("orderBy = %q, quería relevance", c.orderBy)
		}
		if c.maxResults != 40 {
			t.Errorf("maxResults = %d, quería 40", c.maxResults)
		}
	}
	for _, lang := range SupportedLanguages {
		if porIdioma[lang] != len(phrases) {
			t.Errorf("idioma %s consultado %d veces, quería %d", lang, porIdioma[lang], len(phrases))
		}
	}

	wantQuery := fmt.Sprintf("subject:%q", phrases[0])
	if cat.calls[0].query != wantQuery {
		t.Errorf("query = %q, quería %q", cat.calls[0].query, wantQuery)
	}
}

func TestFetchCandidatesFiltros(t *testing.T) {
	profile, v, book := perfilDePrueba()

	good := volumenComo(book, "V1")

	owned := volumenComo(book, "owned-1")
	owned.Title = "Libro que ya tengo"

	dupTitulo := volumenComo(book, "V2")
	dupTitulo.Authors = []string{"GABRIEL GARCÍA MÁRQUEZ"} // mismo autor, otra caja
	dupTitulo.ISBN = ""

	sinDesc := volumenComo(book, "V3")
	sinDesc.Title = "Sin descripción"
	sinDesc.Description = ""
	sinDesc.ISBN = ""

	sinAutores := volumenComo(book, "V4")
	sinAutores.Title = "Sin autores"
	sinAutores.Authors = nil
	sinAutores.ISBN = ""

	otroGrupo := volumenComo(book, "V5")
	otroGrupo.Title = "De jardinería"
	otroGrupo.Categories = []string{"Gardening"}
	otroGrupo.ISBN = ""

	otroIdioma := volumenComo(book, "V6")
	otroIdioma.Title = "En francés"
	otroIdioma.Language = "fr"
	otroIdioma.ISBN = ""

	dupISBN := volumenComo(book, "V7")
	dupISBN.Title = "Otra edición del mismo" // mismo ISBN que good

	pocoSimilar := models.VolumeMetadata{
		ID:          "V8",
		Title:       "Manual of Machinery",
		Authors:     []string{"John Doe"},
		Categories:  []string{"Literary"}, // mapea al grupo Fiction sin compartir vocabulario
		Language:    "en",
		Description: "bolts gears pistons turbines maintenance schedule",
	}

	cat := &fakeSearcher{vols: []models.VolumeMetadata{
		good, owned, dupTitulo, sinDesc, sinAutores, otroGrupo, otroIdioma, dupISBN, pocoSimilar,
	}}

	shown := map[string]bool{}
	got := FetchCandidates(context.Background(), profile, v, cat,
		[]models.BookDoc{{GoogleID: "owned-1"}}, shown, []string{"Fiction"}, DefaultFetchOptions())

	if len(got) != 1 {
		ids := make([]string, len(got))
		for i, c := range got {
			ids[i] = c.ID
		}
		t.Fatalf("sobrevivió %v, quería solo [v1]", ids)
	}
	c := got[0]
	if c.ID != "v1" {
		t.Errorf("ID = %q, quería v1 (normalizado a minúsculas)", c.ID)
	}
	if c.MatchedGroup != "Fiction" {
		t.Errorf("MatchedGroup = %q, quería Fiction", c.MatchedGroup)
	}
	if c.Similarity != 1 {
		t.Errorf("Similarity = %f, quería 1 (redondeada a 3 decimales)", c.Similarity)
	}
	if len(c.MatchedTerms) == 0 || len(c.MatchedTerms) > 5 {
		t.Errorf("MatchedTerms = %v, quería entre 1 y 5 términos", c.MatchedTerms)
	}

	if !shown["v1"] {
		t.Error("el candidato aceptado debe quedar marcado en shownIDs")
	}
	if !shown["owned-1"] {
		t.Error("los libros propios deben sembrarse en shownIDs")
	}
}

func TestFetchCandidatesOrdenDescendente(t *testing.T) {
	profile, v, book := perfilDePrueba()

	exacto := volumenComo(book, "A1")
	parcial := volumenComo(book, "B1")
	parcial.Title = "La soledad de Macondo"
	parcial.ISBN = ""

	// el parcial va primero en la lista del catálogo; el orden final es por score
	cat := &fakeSearcher{vols: []models.VolumeMetadata{parcial, exacto}}

	got := FetchCandidates(context.Background(), profile, v, cat, nil,
		map[string]bool{}, []string{"Fiction"}, DefaultFetchOptions())
	if len(got) != 2 {
		t.Fatalf("sobrevivieron %d candidatos, quería 2", len(got))
	}
	if got[0].ID != "a1" || got[1].ID != "b1" {
		t.Errorf("orden = [%s, %s], quería [a1, b1]", got[0].ID, got[1].ID)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Errorf("no está ordenado por similitud descendente: %f < %f",
			got[0].Similarity, got[1].Similarity)
	}
}

func TestFetchCandidatesToleraFallaParcial(t *testing.T) {
	profile, v, book := perfilDePrueba()
	cat := &fakeSearcher{
		vols:     []models.VolumeMetadata{volumenComo(book, "V1")},
		failLang: "en",
	}

	got := FetchCandidates(context.Background(), profile, v, cat, nil,
		map[string]bool{}, []string{"Fiction"}, DefaultFetchOptions())
	if len(got) != 1 {
		t.Fatalf("una falla por idioma no debe abortar el fetch, sobrevivieron %d", len(got))
	}

	phrases := GroupPhrases("Fiction")
	if want := len(phrases) * len(SupportedLanguages); len(cat.calls) != want {
		t.Errorf("hizo %d llamadas, quería %d (los dos idiomas se intentan igual)", len(cat.calls), want)
	}
}
