package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// TestNormalizeName minúsculas, espacios colapsados y diacríticos fuera:
// la llave de emparejamiento debe sobrevivir a cómo escriba el proveedor.
func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Lime   Fresh ", "lime fresh"},
		{"JALAPEÑO en Escabeche", "jalapeno en escabeche"},
		{"Crème  de   Cassis", "creme de cassis"},
		{"\tRon\nAñejo", "ron anejo"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, engine.NormalizeName(tc.in), "entrada %q", tc.in)
	}
}
