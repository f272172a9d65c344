package service

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"
)

var (
	mdLinkPattern  = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// normalizeEntryText convierte una entrada con markdown a texto plano:
// conserva el texto de los enlaces, descarta URLs sueltas y colapsa el
// espacio en blanco. Clasificadores y validador reciben siempre esta forma.
func normalizeEntryText(input string) string {
	s := mdLinkPattern.ReplaceAllString(input, "$1")
	rendered := blackfriday.Run([]byte(s), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	plain = html.UnescapeString(plain)
	plain = urlPattern.ReplaceAllString(plain, " ")
	return strings.Join(strings.Fields(plain), " ")
}

// tokenize pasa el texto a minúsculas y separa por todo lo que no sea letra,
// dígito o guion bajo. Las contracciones con apóstrofo quedan partidas:
// "can't" -> ["can", "t"].
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, lowered)
	return strings.Fields(cleaned)
}

var stemSuffixes = []string{"ingly", "edly", "fully", "ness", "ing", "ed", "es", "ly", "s"}

// stemOf recorta sufijos comunes para comparar lemas de forma aproximada.
// No es un stemmer real: solo busca que "worried" y "worries" compartan raíz.
func stemOf(token string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= 4 {
			return token[:len(token)-len(suffix)]
		}
	}
	return token
}

// findSurfaceForm busca una palabra clave dentro del texto y devuelve la
// forma en que aparece: el token literal, una subcadena del texto, o el token
// que comparte raíz. Las claves de varias palabras exigen cada palabra como
// token presente.
func findSurfaceForm(keyword string, tokens []string, text string) (string, bool) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return "", false
	}

	if words := strings.Fields(kw); len(words) > 1 {
		for _, w := range words {
			if !containsToken(tokens, w) {
				return "", false
			}
		}
		return kw, true
	}

	if containsToken(tokens, kw) {
		return kw, true
	}
	if strings.Contains(strings.ToLower(text), kw) {
		return kw, true
	}

	st := stemOf(kw)
	for _, tok := range tokens {
		if stemOf(tok) == st {
			return tok, true
		}
	}
	return "", false
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

func isAlphaToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
