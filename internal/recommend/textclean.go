package recommend

import (
	"html"
	"regexp"
	"strings"
)

// Las descripciones del catálogo llegan con HTML embebido, URLs y de vez en
// cuando mojibake (UTF-8 leído como Latin-1, típico en libros en español:
// "Ã±" en lugar de "ñ"). Todo eso ensucia el vocabulario del TF-IDF.

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	urlRe   = regexp.MustCompile(`https?://\S+`)
	spaceRe = regexp.MustCompile(`\s+`)
	punctRe = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

	// el orden importa: las secuencias largas van primero para que
	// "â€™" no se coma parcialmente como "â€"
	mojibakeFix = strings.NewReplacer(
		"â€™", "'",
		"â€˜", "'",
		"â€œ", "\"",
		"â€“", "-",
		"â€”", "-",
		"â€¦", "...",
		"â€¢", "-",
		"â€", "\"",
		"Ã¡", "á",
		"Ã©", "é",
		"Ã­", "í",
		"Ã³", "ó",
		"Ãº", "ú",
		"Ã±", "ñ",
		"Ã¼", "ü",
		"Ã‰", "É",
		"Ã“", "Ó",
		"Ãš", "Ú",
		"Ã‘", "Ñ",
		"Â¿", "¿",
		"Â¡", "¡",
		"Â«", "«",
		"Â»", "»",
		"Â°", "°",
		"Â", "",
	)
)

// CleanDescription limpia un campo de texto crudo del catálogo. Es idempotente:
// CleanDescription(CleanDescription(x)) == CleanDescription(x). Entrada vacía
// devuelve string vacío, nunca falla.
func CleanDescription(text string) string {
	if text == "" {
		return ""
	}

	// 1) reparar mojibake
	text = mojibakeFix.Replace(text)

	// 2) decodificar entidades HTML hasta punto fijo ("&amp;amp;" existe en
	// descripciones reales y una sola pasada rompería la idempotencia)
	for i := 0; i < 4; i++ {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}

	// 3) sacar tags HTML
	text = tagRe.ReplaceAllString(text, " ")

	// 4) sacar URLs
	text = urlRe.ReplaceAllString(text, " ")

	// 5) y 6) saltos de línea/tabs a espacio, colapsar corridas de espacios
	text = spaceRe.ReplaceAllString(text, " ")

	// 7) trim
	return strings.TrimSpace(text)
}

// normalizeText baja a minúsculas y saca puntuación, dejando solo letras,
// números y espacios. Es el paso previo a tokenizar tanto los documentos del
// perfil como los candidatos (misma receta en los dos lados).
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = punctRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
