package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vinoteca-api/pkg/normalize"
)

// Fold alimenta la columna de búsqueda del catálogo: "rose" tiene que
// encontrar "Rosé" y "penedes" a "Penedès".
func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rosé", "rose"},
		{"Penedès", "penedes"},
		{"Señorío de Rueda", "senorio de rueda"},
		{"MALBEC", "malbec"},
		{"torrontés", "torrontes"},
		{"Jamón crudo", "jamon crudo"},
		{"ya-normalizado", "ya-normalizado"},
		{"", ""},
		{"Müller-Thurgau", "muller-thurgau"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Fold(tc.in), "Fold(%q)", tc.in)
	}
}

// Idempotencia: plegar dos veces da lo mismo que una.
func TestFold_Idempotente(t *testing.T) {
	for _, s := range []string{"Rosé", "Señorío", "Côtes du Rhône"} {
		once := normalize.Fold(s)
		assert.Equal(t, once, normalize.Fold(once))
	}
}
