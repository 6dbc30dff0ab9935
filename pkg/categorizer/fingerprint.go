package categorizer

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/haritha1313/smartnotes/internal/util"
)

// Fingerprint returns a deterministic cache key for a categorization request.
// Content and comment are lowercased with whitespace collapsed, category names
// lowercased and sorted, so byte-identical normalized inputs always map to the
// same key.
func Fingerprint(content, comment string, knownCategories []string) string {
	cats := make([]string, len(knownCategories))
	for i, c := range knownCategories {
		cats[i] = strings.ToLower(c)
	}
	sort.Strings(cats)

	combined := util.NormalizeWhitespace(content) + "|" +
		util.NormalizeWhitespace(comment) + "|" +
		strings.Join(cats, ",")

	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}
