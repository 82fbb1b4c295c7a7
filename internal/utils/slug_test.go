package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{name: "strips punctuation", title: "My Song!", artist: "DJ X", want: "dj-x-my-song"},
		{name: "collapses hyphens and whitespace", title: "  a--b  ", artist: "c", want: "c-a-b"},
		{name: "empty after strip", title: "!!!", artist: "???", want: ""},
		{name: "unicode stripped", title: "Füür", artist: "Bjørk", want: "bjrk-fr"},
		{name: "already clean", title: "night drive", artist: "neon owl", want: "neon-owl-night-drive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title, tt.artist))
		})
	}
}

func TestSlugTruncatesTo100(t *testing.T) {
	long := strings.Repeat("abc ", 60)
	slug := Slug(long, "artist")
	assert.LessOrEqual(t, len(slug), 100)
	assert.True(t, strings.HasPrefix(slug, "artist-abc-"))
}

func TestSlugDeterministic(t *testing.T) {
	first := Slug("Same Title", "Same Artist")
	second := Slug("Same Title", "Same Artist")
	assert.Equal(t, first, second)
}

func TestBuildReleaseURL(t *testing.T) {
	assert.Equal(t, "/release/42/dj-x-my-song", BuildReleaseURL(42, "My Song!", "DJ X"))
	// Distinct ids may share a slug; the id disambiguates.
	assert.Equal(t, "/release/43/dj-x-my-song", BuildReleaseURL(43, "My Song!", "DJ X"))
}
