package stega

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_RemovesZeroWidthRun(t *testing.T) {
	encoded := "sidebar\u200b\u200c\u200d\ufeff\u200b\u200c"
	assert.Equal(t, "sidebar", Clean(encoded))
}

func TestClean_RemovesTagCharacters(t *testing.T) {
	assert.Equal(t, "modal", Clean("mo\U000E0041\U000E0042dal"))
}

func TestClean_PlainStringUnchanged(t *testing.T) {
	assert.Equal(t, "flag-country", Clean("flag-country"))
	assert.Equal(t, "Zürich", Clean("Zürich"))
}
