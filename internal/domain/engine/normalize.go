package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transformador NFD + eliminación de marcas diacríticas + NFC.
// Los catálogos de bares/restaurantes vienen llenos de acentos
// ("Jalapeño", "Crème de Cassis") y los proveedores los escriben
// distinto en cada factura.
var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName normaliza un nombre de producto para usarlo como llave de
// emparejamiento: minúsculas, sin diacríticos y con espacios colapsados.
func NormalizeName(name string) string {
	folded, _, err := transform.String(stripAccents, name)
	if err != nil {
		// Entrada con UTF-8 inválido: se normaliza sin quitar acentos.
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
