package util

import (
	"strings"

	"github.com/neurosnap/sentences"
	log "github.com/sirupsen/logrus"
)

// NormalizeWhitespace lowercases s and collapses all whitespace runs to a
// single space. Used to canonicalize text before fingerprinting.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// StripQuotes removes surrounding single or double quotes.
func StripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

// TruncateAtSentence shortens text to at most maxLen bytes, cutting at the
// last full sentence that fits and appending "..." when anything was dropped.
// Falls back to a hard cut when no sentence boundary fits.
func TruncateAtSentence(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}

	tokenizer := sentences.NewSentenceTokenizer(nil)
	if tokenizer == nil {
		log.Warn("sentence tokenizer unavailable, truncating mid-sentence")
		return text[:maxLen] + "..."
	}

	var b strings.Builder
	for _, sent := range tokenizer.Tokenize(text) {
		s := strings.TrimSpace(sent.Text)
		if s == "" {
			continue
		}
		// +1 for the joining space
		if b.Len()+len(s)+1 > maxLen {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	if b.Len() == 0 {
		return text[:maxLen] + "..."
	}
	return b.String() + "..."
}
