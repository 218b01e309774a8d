package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueLayout(t *testing.T) {
	t.Parallel()

	want := map[string]int{
		"vowels":      12,
		"matras":      12,
		"consonants":  33,
		"numerals":    10,
		"punctuation": 10,
	}

	got := Groups()
	require.Len(t, got, 5)
	assert.Equal(t, "vowels", got[0].Name)
	assert.Equal(t, "punctuation", got[4].Name)
	for _, g := range got {
		assert.Len(t, g.Keys, want[g.Name], g.Name)
		assert.NotEmpty(t, g.Title)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	k, ok := Key(2, 0)
	assert.True(t, ok)
	assert.Equal(t, "क", k)

	k, ok = Key(3, 9)
	assert.True(t, ok)
	assert.Equal(t, "९", k)

	_, ok = Key(5, 0)
	assert.False(t, ok)
	_, ok = Key(0, 12)
	assert.False(t, ok)
	_, ok = Key(-1, 0)
	assert.False(t, ok)
}

func TestApplyBuildsWord(t *testing.T) {
	t.Parallel()

	text := ""
	for _, key := range []string{"न", "म", "स", "्", "त", "े"} {
		text = Apply(text, key)
	}
	assert.Equal(t, "नमस्ते", text)

	text = Apply(text, Space)
	text = Apply(text, "ज")
	text = Apply(text, "ी")
	assert.Equal(t, "नमस्ते जी", text)
}

func TestApplyBackspace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Apply("", Backspace))
	assert.Equal(t, "घ", Apply("घर", Backspace))
	assert.Equal(t, "नमस्त", Apply("नमस्ते", Backspace))
	assert.Equal(t, "अ", Apply("अं", Backspace))
	assert.Equal(t, "ab", Apply("abc", Backspace))
}
