package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceStartPattern = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndPattern   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanModelJSON quita fences ```json ... ``` y BOM de la salida del modelo,
// dejando el contenido usable para extraer el objeto JSON.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartPattern.ReplaceAllString(s, "")
	s = fenceEndPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto JSON balanceado dentro del
// texto, o cadena vacía si no hay ninguno. Los modelos chicos suelen rodear
// el JSON con prosa; esto lo rescata sin depender de regex frágiles.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}

// flexKeywords acepta las dos formas en que los modelos devuelven keywords:
// lista JSON de strings o un solo string separado por comas.
type flexKeywords []string

func (k *flexKeywords) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = trimNonEmpty(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*k = trimNonEmpty(strings.Split(joined, ","))
	return nil
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
