// Package textsearch normaliza texto para búsquedas sin distinguir mayúsculas ni acentos
// ("Jitomate" encuentra "jitomáte", "mie" encuentra "Mié").
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita acentos, espacios extremos y mayúsculas.
// Los transformers de x/text guardan estado, así que se crean por llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return cases.Fold().String(out)
}

// Contains indica si needle aparece en haystack tras normalizar ambos. Needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// Equal compara dos textos normalizados.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
