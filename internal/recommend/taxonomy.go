package recommend

import "strings"

// GroupOther es el grupo centinela para categorías que no matchean nada.
const GroupOther = "Other"

// CategoryGroup agrupa las categorías crudas del catálogo en géneros gruesos.
// Las frases se usan en dos direcciones: para mapear una categoría cruda a su
// grupo (substring, case-insensitive) y como términos subject: al consultar
// el catálogo externo.
type CategoryGroup struct {
	Name    string
	Phrases []string
}

// Groups es una lista ordenada a propósito: gana el primer grupo que matchea,
// por eso los géneros específicos ("Science Fiction", "Historical Fiction")
// van antes que los genéricos ("Fiction", "History"). No convertir a map.
var Groups = []CategoryGroup{
	{"Mystery & Thriller", []string{"mystery", "thriller", "detective", "crime", "suspense"}},
	{"Science Fiction", []string{"science fiction", "sci-fi", "dystopia", "space opera"}},
	{"Fantasy", []string{"fantasy", "magic", "mythology", "fairy tales"}},
	{"Horror", []string{"horror", "ghost", "terror", "paranormal"}},
	{"Romance", []string{"romance", "love stories", "romantic"}},
	{"Historical Fiction", []string{"historical fiction", "historical novel", "war stories"}},
	{"Young Adult", []string{"young adult", "juvenile fiction", "teen", "coming of age"}},
	{"Children", []string{"children", "picture books", "bedtime", "early readers"}},
	{"Comics & Graphic Novels", []string{"comics", "graphic novel", "manga", "cartoons"}},
	{"Poetry", []string{"poetry", "poems", "verse"}},
	{"Biography & Memoir", []string{"biography", "autobiography", "memoir", "diaries"}},
	{"History", []string{"history", "ancient", "civilization", "world war"}},
	{"Science & Nature", []string{"science", "nature", "physics", "biology", "astronomy"}},
	{"Technology", []string{"technology", "computers", "engineering", "programming"}},
	{"Business & Economics", []string{"business", "economics", "finance", "management", "marketing"}},
	{"Self-Help", []string{"self-help", "personal growth", "motivational", "success"}},
	{"Health & Wellness", []string{"health", "fitness", "nutrition", "medicine"}},
	{"Religion & Spirituality", []string{"religion", "spirituality", "theology", "bible"}},
	{"Philosophy & Psychology", []string{"philosophy", "psychology", "ethics", "mind"}},
	{"Politics & Society", []string{"political", "social science", "sociology", "current events"}},
	{"Art & Design", []string{"art", "photography", "design", "architecture", "music"}},
	{"Travel & Food", []string{"travel", "cooking", "food", "gastronomy"}},
	{"Fiction", []string{"fiction", "literary", "novel", "short stories"}},
}

// MapToGroup mapea una categoría cruda del catálogo a su grupo. Función total:
// nunca falla, lo que no matchea cae en "Other".
func MapToGroup(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return GroupOther
	}
	for _, g := range Groups {
		for _, phrase := range g.Phrases {
			if strings.Contains(lowered, phrase) {
				return g.Name
			}
		}
	}
	return GroupOther
}

// NormalizeRawCategories separa strings tipo "Fiction / Thrillers, Suspense"
// en categorías individuales, sin vacíos ni duplicados. El catálogo externo
// mete varias etiquetas en un solo string delimitado.
func NormalizeRawCategories(raws []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range raws {
		for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
			return r == '/' || r == ','
		}) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key := strings.ToLower(part)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, part)
		}
	}
	return out
}

// GroupsFor devuelve el conjunto de grupos al que mapean las categorías
// crudas de un libro (string delimitado, como viene de la base).
func GroupsFor(rawCategories string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, cat := range NormalizeRawCategories([]string{rawCategories}) {
		g := MapToGroup(cat)
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// GroupPhrases es el mapeo inverso: las frases representativas de un grupo,
// para armar las consultas subject: al catálogo. "Other" no tiene frases.
func GroupPhrases(name string) []string {
	for _, g := range Groups {
		if g.Name == name {
			return g.Phrases
		}
	}
	return nil
}

// GroupNames lista los nombres de grupo en el orden de la tabla.
func GroupNames() []string {
	names := make([]string, 0, len(Groups)+1)
	for _, g := range Groups {
		names = append(names, g.Name)
	}
	names = append(names, GroupOther)
	return names
}
