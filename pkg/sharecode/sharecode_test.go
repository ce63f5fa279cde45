package sharecode_test

import (
	"strings"
	"testing"

	"zonelink/pkg/sharecode"

	"github.com/stretchr/testify/assert"
)

func TestAlphabetExcludesAmbiguousCharacters(t *testing.T) {
	assert.Len(t, sharecode.Alphabet, 32)
	for _, ch := range "IO01" {
		assert.NotContains(t, sharecode.Alphabet, string(ch))
	}
}

func TestGenerate(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := sharecode.Generate()
		assert.Len(t, code, sharecode.Length)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(sharecode.Alphabet, ch), "unexpected character %q in code %s", ch, code)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABC234", sharecode.Normalize(" abc234 "))
	assert.Equal(t, "ABC234", sharecode.Normalize("ABC234"))
	assert.Equal(t, "", sharecode.Normalize("   "))
}
