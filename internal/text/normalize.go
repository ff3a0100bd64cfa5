// Package text holds the comment pre-processing rules shared by the
// clustering engine: normalization, noise filtering and the similarity match.
package text

import (
	"strings"
	"unicode"
)

const punctuation = ".,!?;:'\""

// noiseWords are exact-match comments that carry no analyzable content.
var noiseWords = map[string]struct{}{
	"nothing": {}, "none": {}, "n/a": {}, "na": {}, "no": {}, "yes": {},
	"ok": {}, "okay": {}, "fine": {}, "change": {}, "improvement": {},
	"improve": {}, "better": {}, "more": {}, "less": {}, "good": {},
	"bad": {}, "great": {}, "nice": {}, "everything": {}, "anything": {},
	"teacher": {}, "lessons": {}, "class": {}, "classes": {},
}

// Normalize lowercases, trims and strips sentence punctuation. Casing is
// ASCII-oriented; comments are translated to English before they reach this
// layer.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// IsNoise reports whether a comment is too short or too content-free to
// cluster. The empty string is noise.
func IsNoise(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) < 4 {
		return true
	}
	if _, ok := noiseWords[Normalize(s)]; ok {
		return true
	}
	return lettersOnly(s) == "nothing"
}

// IsEnglishDominant reports whether basic-Latin letters make up more than
// half of the text. Translation happens at capture time; this guards against
// untranslated comments leaking into the clusters.
func IsEnglishDominant(s string) bool {
	if s == "" {
		return false
	}
	total, latin := 0, 0
	for _, r := range s {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}
	return float64(latin) > float64(total)*0.5
}

func lettersOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
