package recommend

import (
	"testing"

	"biblioteca-backend/internal/models"
)

func libroPerfil(id, title string) models.BookDoc {
	return models.BookDoc{
		GoogleID:    id,
		Title:       title,
		Author:      "Gabriel García Márquez",
		Categories:  "Fiction",
		Language:    "es",
		Publisher:   "Sudamericana",
		Description: "novela sobre la soledad de una familia en macondo",
	}
}

func TestBuildProfileCorpusVacio(t *testing.T) {
	profile, v, fp := BuildProfile(nil, nil)
	if profile != nil || v != nil || fp != "" {
		t.Errorf("biblioteca vacía debe dar terna nula, dio (%v, %v, %q)", profile, v, fp)
	}

	// libros que no califican (sin autor, sin categoría, sin idioma)
	books := []models.BookDoc{
		{Title: "Sin autor", Categories: "Fiction", Language: "es"},
		{Title: "Sin categoría", Author: "Alguien", Language: "es"},
		{Title: "Sin idioma", Author: "Alguien", Categories: "Fiction"},
	}
	profile, v, fp = BuildProfile(books, nil)
	if profile != nil || v != nil || fp != "" {
		t.Error("libros incompletos no participan del perfil")
	}
}

func TestBuildProfileFiltraPorGrupos(t *testing.T) {
	books := []models.BookDoc{libroPerfil("b1", "Cien años de soledad")}

	// el único libro es Fiction; seleccionar Poetry deja el corpus vacío
	profile, _, _ := BuildProfile(books, []string{"Poetry"})
	if profile != nil {
		t.Error("la selección de grupos debe filtrar el corpus")
	}

	profile, _, _ = BuildProfile(books, []string{"Fiction"})
	if profile == nil {
		t.Error("con el grupo correcto el perfil debe construirse")
	}
}

func TestFingerprintEstable(t *testing.T) {
	books := []models.BookDoc{
		libroPerfil("b1", "Cien años de soledad"),
		libroPerfil("b2", "El amor en los tiempos del cólera"),
	}
	_, _, fp1 := BuildProfile(books, nil)
	_, _, fp2 := BuildProfile(books, nil)
	if fp1 == "" || fp1 != fp2 {
		t.Errorf("mismo insumo debe dar el mismo fingerprint: %q vs %q", fp1, fp2)
	}

	// el orden de la selección de grupos no debe importar
	_, _, fpA := BuildProfile(books, []string{"Fiction", "Poetry"})
	_, _, fpB := BuildProfile(books, []string{"Poetry", "Fiction"})
	if fpA != fpB {
		t.Error("la selección de grupos se normaliza ordenada antes de hashear")
	}
}

func TestFingerprintSensibleACambios(t *testing.T) {
	base := []models.BookDoc{libroPerfil("b1", "Cien años de soledad")}
	_, _, fpBase := BuildProfile(base, nil)

	mutaciones := map[string]func(*models.BookDoc){
		"título":      func(b *models.BookDoc) { b.Title = "Otro título distinto" },
		"autor":       func(b *models.BookDoc) { b.Author = "Julio Cortázar" },
		"categorías":  func(b *models.BookDoc) { b.Categories = "Poetry" },
		"idioma":      func(b *models.BookDoc) { b.Language = "en" },
		"editorial":   func(b *models.BookDoc) { b.Publisher = "Alfaguara" },
		"descripción": func(b *models.BookDoc) { b.Description = "cuentos breves del sur argentino" },
	}
	for campo, muta := range mutaciones {
		books := []models.BookDoc{libroPerfil("b1", "Cien años de soledad")}
		muta(&books[0])
		_, _, fp := BuildProfile(books, nil)
		if fp == fpBase {
			t.Errorf("cambiar %s no cambió el fingerprint", campo)
		}
	}

	// agregar un libro también lo cambia
	_, _, fpMas := BuildProfile(append(base, libroPerfil("b2", "Rayuela")), nil)
	if fpMas == fpBase {
		t.Error("agregar un libro no cambió el fingerprint")
	}

	// y la selección de grupos entra al hash aunque el corpus no cambie
	_, _, fpSel := BuildProfile(base, []string{"Fiction"})
	if fpSel == fpBase {
		t.Error("la selección de grupos no cambió el fingerprint")
	}
}
