package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas y sin marcas diacríticas ("Señorío" → "senorio").
// Se usa para la columna de búsqueda de productos, de modo que "rose" encuentre "Rosé".
func Fold(s string) string {
	// El transformer es stateful; se construye por llamada para ser seguro en concurrencia.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
