package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/gosimple/slug"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateSlug builds a URL slug from a title with a short random suffix so
// repeated titles stay unique.
func GenerateSlug(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "event"
	}
	suffix, err := gonanoid.Generate(idAlphabet, 6)
	if err != nil {
		return base
	}
	return base + "-" + strings.ToLower(suffix)
}
