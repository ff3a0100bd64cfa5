// Package cluster folds free-text comments into frequency-ranked clusters of
// semantically similar comments.
//
// The fold is greedy and first-match-wins: each comment joins the first
// existing cluster whose key contains it, is contained by it, or passes the
// similarity match. Reordering the input can therefore change the clustering;
// that property is kept deliberately for compatibility with historical
// aggregations.
package cluster

import (
	"sort"
	"strings"

	"github.com/lingopulse/insight-server/internal/text"
)

// Cluster is one group of similar comments: the cleanest member seen as
// display text plus how many comments matched.
type Cluster struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// minCommentLength is the shortest normalized comment worth clustering.
const minCommentLength = 4

// Comments clusters raw comments in input order and returns the clusters
// sorted by count descending, ties keeping first-seen order.
func Comments(comments []string) []Cluster {
	type entry struct {
		display string
		count   int
	}
	var keys []string
	byKey := make(map[string]*entry)

	for _, raw := range comments {
		raw = strings.TrimSpace(raw)
		if raw == "" || !text.IsEnglishDominant(raw) || text.IsNoise(raw) {
			continue
		}
		normalized := text.Normalize(raw)
		if len([]rune(normalized)) < minCommentLength {
			continue
		}

		matched := false
		for _, key := range keys {
			if strings.Contains(key, normalized) || strings.Contains(normalized, key) || text.AreSimilar(key, normalized) {
				e := byKey[key]
				e.count++
				// Prefer a strictly shorter representative; equal
				// length keeps the first seen.
				if len(raw) < len(e.display) {
					e.display = raw
				}
				matched = true
				break
			}
		}
		if !matched {
			keys = append(keys, normalized)
			byKey[normalized] = &entry{display: raw, count: 1}
		}
	}

	out := make([]Cluster, 0, len(keys))
	for _, key := range keys {
		e := byKey[key]
		out = append(out, Cluster{Text: e.display, Count: e.count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
