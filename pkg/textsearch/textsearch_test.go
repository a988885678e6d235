package textsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/verduras-pro/pkg/textsearch"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "mie", textsearch.Fold(" Mié "))
	assert.Equal(t, "jitomate", textsearch.Fold("JITOMATE"))
	assert.Equal(t, "calabaza", textsearch.Fold("Calabazá"))
}

func TestContains(t *testing.T) {
	assert.True(t, textsearch.Contains("Espinacas", "PINA"))
	assert.True(t, textsearch.Contains("Limón", "limon"))
	assert.True(t, textsearch.Contains("Tomates", ""))
	assert.False(t, textsearch.Contains("Papas", "tomate"))
}

func TestEqual(t *testing.T) {
	assert.True(t, textsearch.Equal("Chiles", "chiles "))
	assert.False(t, textsearch.Equal("Chiles", "Chile"))
}
