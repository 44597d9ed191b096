package recommend

import "testing"

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"vacío", "", ""},
		{"solo espacios", "   \n\t  ", ""},
		{"tags html", "<p>Una <b>novela</b> corta.</p>", "Una novela corta."},
		{"entidades", "Caf&eacute; &amp; pan", "Café & pan"},
		{"entidades dobles", "Tom &amp;amp; Jerry", "Tom & Jerry"},
		{"urls", "Más en https://example.com/libro ahora", "Más en ahora"},
		{"mojibake", "El nÃ±ido de la pasiÃ³n â€“ ediciÃ³n", "El nñido de la pasión - edición"},
		{"espacios", "una\n\nnovela\t corta", "una novela corta"},
	}
	for _, tc := range cases {
		if got := CleanDescription(tc.in); got != tc.want {
			t.Errorf("%s: CleanDescription(%q) = %q, quería %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestCleanDescriptionIdempotente(t *testing.T) {
	inputs := []string{
		"",
		"<p>Una novela de GarcÃ­a MÃ¡rquez &amp;amp; compaÃ±Ã­a</p>",
		"Texto ya limpio sin nada raro",
		"Ver https://ejemplo.mx/x?y=1 &lt;aquí&gt;",
		"â€œcitasâ€ y guiones â€” sueltos",
	}
	for _, in := range inputs {
		once := CleanDescription(in)
		twice := CleanDescription(once)
		if once != twice {
			t.Errorf("no idempotente para %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"¡Hola, Mundo!", "hola mundo"},
		{"El Número 7", "el número 7"},
		{"a--b...c", "a b c"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeText(tc.in); got != tc.want {
			t.Errorf("normalizeText(%q) = %q, quería %q", tc.in, got, tc.want)
		}
	}
}
