package store

import "sort"

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// FuseRRF merges a dense (vector) ranking and a lexical (full-text) ranking
// via Reciprocal Rank Fusion: score(d) = sum of 1/(k + rank_i(d)) over each
// ranking where d appears. Ties keep the dense entry, which carries the
// hydrated content.
func FuseRRF(dense, lexical []Document, topK int) []Document {
	type scored struct {
		doc   Document
		score float64
	}

	merged := make(map[string]*scored)

	for rank, d := range dense {
		merged[d.ID] = &scored{doc: d, score: 1.0 / float64(rrfK+rank+1)}
	}

	for rank, d := range lexical {
		s := 1.0 / float64(rrfK+rank+1)
		if existing, ok := merged[d.ID]; ok {
			existing.score += s
		} else {
			merged[d.ID] = &scored{doc: d, score: s}
		}
	}

	results := make([]Document, 0, len(merged))
	for _, s := range merged {
		d := s.doc
		d.Score = s.score
		results = append(results, d)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].ID < results[j].ID // stable order for equal scores
		}
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results
}
