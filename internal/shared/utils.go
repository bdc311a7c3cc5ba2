// Package shared provides identifier, slug and filename helpers used by
// every repository and the upload path.
package shared

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var slugSeparators = regexp.MustCompile(`[\s\W-]+`)

// NewID returns a random UUID string used as the primary key of every entity.
func NewID() string {
	return uuid.NewString()
}

// Slugify lower-cases and trims text, then collapses every run of
// whitespace, non-word characters and dashes into a single dash.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	return slugSeparators.ReplaceAllString(s, "-")
}

// CategorySlug resolves the slug stored on a new category: the explicit slug
// when given, otherwise one derived from name. Leading and trailing dashes are
// stripped; an empty result falls back to the slug of a fresh identifier.
func CategorySlug(name, explicit string) string {
	candidate := explicit
	if candidate == "" {
		candidate = Slugify(name)
	}
	candidate = strings.Trim(candidate, "-")
	if candidate == "" {
		return Slugify(NewID())
	}
	return candidate
}

// UploadFilename salts an uploaded file's name with the upload time and a
// random suffix, keeping the original extension:
//
//	photo.jpg -> 1718000000000-3f1c...-9a2e.jpg
func UploadFilename(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), filepath.Ext(original))
}

// MakeRandHexString returns size random bytes encoded as hex (2*size chars).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
