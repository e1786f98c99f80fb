// Package kb assembles the knowledge base: it joins the disease, drug, herb
// and literature tables into self-contained text documents and keeps the
// disease lookups the symptom matcher needs.
package kb

import (
	"slices"
	"sort"

	"medrag/internal/domain"
)

// KnowledgeBase is the read-only result of one build.
type KnowledgeBase struct {
	documents    []domain.Document
	diseaseNames map[int]string
	symptoms     map[int]SymptomInfo
	symptomOrder []int
}

// Documents returns a copy of the documents in id order.
func (kb *KnowledgeBase) Documents() []domain.Document {
	return slices.Clone(kb.documents)
}

// Len returns the number of documents.
func (kb *KnowledgeBase) Len() int { return len(kb.documents) }

// DiseaseName returns the name of disease id.
func (kb *KnowledgeBase) DiseaseName(id int) (string, bool) {
	name, ok := kb.diseaseNames[id]
	return name, ok
}

// DiseaseIDs returns every disease id in ascending order.
func (kb *KnowledgeBase) DiseaseIDs() []int { return sortedKeys(kb.diseaseNames) }

// Symptoms returns the symptom description of disease id.
func (kb *KnowledgeBase) Symptoms(id int) (SymptomInfo, bool) {
	s, ok := kb.symptoms[id]
	return s, ok
}

// SymptomEntries returns every symptom description in the order diseases
// first appear in the symptom sheet. A later row for the same disease
// replaces the text but keeps the position.
func (kb *KnowledgeBase) SymptomEntries() []SymptomInfo {
	out := make([]SymptomInfo, len(kb.symptomOrder))
	for i, id := range kb.symptomOrder {
		out[i] = kb.symptoms[id]
	}
	return out
}

// Stats counts documents per type.
type Stats struct {
	Total  int
	ByType map[domain.DocType]int
}

// Stats returns document counts for the knowledge base.
func (kb *KnowledgeBase) Stats() Stats {
	s := Stats{Total: len(kb.documents), ByType: make(map[domain.DocType]int, len(domain.DocTypes))}
	for _, d := range kb.documents {
		s.ByType[d.Type]++
	}
	return s
}

// Args returns the counts as slog key/value pairs in domain.DocTypes order.
func (s Stats) Args() []any {
	args := []any{"documents", s.Total}
	for _, t := range domain.DocTypes {
		args = append(args, string(t), s.ByType[t])
	}
	return args
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
