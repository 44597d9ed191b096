package recommend

import (
	"reflect"
	"testing"
)

func TestMapToGroupTotal(t *testing.T) {
	// nunca falla y siempre devuelve un grupo, incluso con basura
	cases := map[string]string{
		"":                      GroupOther,
		"   ":                   GroupOther,
		"Categoría inventada":   GroupOther,
		"Fiction":               "Fiction",
		"FICTION":               "Fiction",
		"Juvenile Fiction":      "Young Adult",
		"Science Fiction":       "Science Fiction",
		"Historical Fiction":    "Historical Fiction",
		"True Crime":            "Mystery & Thriller",
		"Biography & Autobiography": "Biography & Memoir",
		"Cooking / Regional":    "Travel & Food",
		"Self-Help":             "Self-Help",
	}
	for raw, want := range cases {
		if got := MapToGroup(raw); got != want {
			t.Errorf("MapToGroup(%q) = %q, quería %q", raw, got, want)
		}
	}
}

func TestMapToGroupOrder(t *testing.T) {
	// el orden de la tabla es significativo: lo específico gana
	if got := MapToGroup("science fiction"); got != "Science Fiction" {
		t.Errorf("'science fiction' cayó en %q, el grupo específico va primero", got)
	}
	if got := MapToGroup("historical fiction"); got != "Historical Fiction" {
		t.Errorf("'historical fiction' cayó en %q", got)
	}
	// "fiction" pelado sí va al grupo general
	if got := MapToGroup("fiction"); got != "Fiction" {
		t.Errorf("'fiction' cayó en %q", got)
	}
}

func TestNormalizeRawCategories(t *testing.T) {
	got := NormalizeRawCategories([]string{
		"Fiction / Thrillers, Suspense",
		" Fiction ",
		"",
		"/,/",
	})
	want := []string{"Fiction", "Thrillers", "Suspense"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeRawCategories = %v, quería %v", got, want)
	}
}

func TestGroupsFor(t *testing.T) {
	got := GroupsFor("Fiction / Poetry, Fiction")
	want := []string{"Fiction", "Poetry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupsFor = %v, quería %v", got, want)
	}

	if got := GroupsFor(""); got != nil {
		t.Errorf("GroupsFor(\"\") = %v, quería nil", got)
	}
}

func TestGroupPhrases(t *testing.T) {
	if phrases := GroupPhrases("Poetry"); len(phrases) == 0 {
		t.Error("Poetry no tiene frases representativas")
	}
	if phrases := GroupPhrases(GroupOther); phrases != nil {
		t.Errorf("Other no debería tener frases, tiene %v", phrases)
	}
	if phrases := GroupPhrases("no-existe"); phrases != nil {
		t.Errorf("grupo inexistente devolvió frases: %v", phrases)
	}
}

func TestGroupNamesIncludesOther(t *testing.T) {
	names := GroupNames()
	if names[len(names)-1] != GroupOther {
		t.Errorf("GroupNames debe terminar en %q, terminó en %q", GroupOther, names[len(names)-1])
	}
	if len(names) != len(Groups)+1 {
		t.Errorf("GroupNames tiene %d entradas, quería %d", len(names), len(Groups)+1)
	}
}
