package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLength = 100

var (
	slugInvalidChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespaceRun = regexp.MustCompile(`\s+`)
	slugHyphenRun     = regexp.MustCompile(`-+`)
)

// Slug builds the URL-safe identifier embedded in release links:
// lower-cased "artist-title" reduced to [a-z0-9-], capped at 100 characters.
func Slug(title, artist string) string {
	slug := strings.ToLower(artist + "-" + title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespaceRun.ReplaceAllString(slug, "-")
	slug = slugHyphenRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// BuildReleaseURL returns the canonical path for a release page. The id is
// the real disambiguator; distinct releases may share a slug.
func BuildReleaseURL(id int, title, artist string) string {
	return fmt.Sprintf("/release/%d/%s", id, Slug(title, artist))
}
