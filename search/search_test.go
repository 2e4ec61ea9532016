package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeDropsStopwordsAndDuplicates(t *testing.T) {
	tokens := Tokenize("The Go Conference in the City of Go")
	assert.Equal(t, []string{"go", "conference", "city"}, tokens)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Nil(t, Tokenize("   "))
	assert.Nil(t, Tokenize(""))
}

func TestTempSearchKeyIsUniquePerQuery(t *testing.T) {
	assert.NotEqual(t, tempSearchKey(), tempSearchKey())
}
