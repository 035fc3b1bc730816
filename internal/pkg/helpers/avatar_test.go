package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAvatarURLDeterministic(t *testing.T) {
	first := DefaultAvatarURL("s1")
	second := DefaultAvatarURL("s1")
	assert.Equal(t, first, second)

	other := DefaultAvatarURL("s2")
	assert.NotEqual(t, first, other)
}

func TestDefaultAvatarURLEscapesSeed(t *testing.T) {
	got := DefaultAvatarURL("김 민준")
	assert.False(t, strings.Contains(got, " "))
	assert.True(t, strings.HasPrefix(got, "https://"))
}

func TestAvatarURLPrecedence(t *testing.T) {
	uploaded := "https://cdn.example.com/photos/s1.png"
	assert.Equal(t, uploaded, AvatarURL(uploaded, "s1", "Kim Minjun"))

	// id preferred over name as seed
	assert.Equal(t, DefaultAvatarURL("s1"), AvatarURL("", "s1", "Kim Minjun"))
	assert.Equal(t, DefaultAvatarURL("Kim Minjun"), AvatarURL("", "", "Kim Minjun"))
}
