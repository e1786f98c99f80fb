// Package symptoms scores diseases by how much of their recorded symptom
// description appears in the user's question.
package symptoms

import (
	"fmt"
	"sort"
	"strings"

	"medrag/internal/domain"
	"medrag/internal/kb"
	"medrag/internal/textutil"
)

const (
	DefaultMinScore   = 0.9
	DefaultMaxResults = 5
)

// Options bounds what Match returns.
type Options struct {
	MinScore   float64
	MaxResults int
}

// DefaultOptions returns the strict threshold used by the assistant.
func DefaultOptions() Options {
	return Options{MinScore: DefaultMinScore, MaxResults: DefaultMaxResults}
}

// Catalog is the part of the knowledge base the matcher reads.
type Catalog interface {
	DiseaseName(id int) (string, bool)
	// SymptomEntries returns entries in symptom sheet order.
	SymptomEntries() []kb.SymptomInfo
}

// Match returns the diseases whose symptom score reaches opts.MinScore, best
// first. The score is the share of the disease's symptom tokens that also
// occur in the query, so a short description fully covered by a long query
// still scores 1. Equal scores keep SymptomEntries order.
func Match(query string, catalog Catalog, opts Options) []domain.SymptomMatch {
	q := textutil.WordSet(query)
	if len(q) == 0 {
		return nil
	}

	var matches []domain.SymptomMatch
	for _, entry := range catalog.SymptomEntries() {
		ref := textutil.WordSet(entry.Symptoms)
		if len(ref) == 0 {
			continue
		}
		shared := 0
		for tok := range ref {
			if _, ok := q[tok]; ok {
				shared++
			}
		}
		score := float64(shared) / float64(len(ref))
		if score < opts.MinScore {
			continue
		}
		name, ok := catalog.DiseaseName(entry.DiseaseID)
		if !ok {
			name = fmt.Sprintf("Bệnh ID %d", entry.DiseaseID)
		}
		matches = append(matches, domain.SymptomMatch{
			DiseaseID:   entry.DiseaseID,
			DiseaseName: name,
			Score:       score,
			Symptoms:    entry.Symptoms,
			Link:        entry.Link,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if opts.MaxResults >= 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// RenderBlock formats matches as the suggestion block placed ahead of the
// retrieved documents. It returns "" when there is nothing to suggest.
func RenderBlock(matches []domain.SymptomMatch, minScore float64) string {
	if len(matches) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("[Symptom-similarity suggestions]\n")
	fmt.Fprintf(&sb, "Based on the described symptoms, the following diseases in the database have symptom similarity ≥ %g:\n", minScore)
	for _, m := range matches {
		fmt.Fprintf(&sb, "- Disease: %s (similarity ~ %.2f). Recorded symptoms: %s\n", m.DiseaseName, m.Score, m.Symptoms)
	}
	sb.WriteString("These are suggestions from the symptom data only, not a diagnosis.\n\n")
	return sb.String()
}
