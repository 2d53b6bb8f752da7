package knowledge

import (
	"strings"

	"github.com/nikalabs/walletchat/internal/model"
)

// Store holds the fixed support knowledge base. It is populated once at
// construction and read-only afterwards, so lookups need no locking.
type Store struct {
	entries []model.KnowledgeEntry
}

func NewStore() *Store {
	return NewStoreWithEntries(defaultEntries)
}

func NewStoreWithEntries(entries []model.KnowledgeEntry) *Store {
	copied := make([]model.KnowledgeEntry, len(entries))
	copy(copied, entries)
	return &Store{entries: copied}
}

// GetAll returns every entry in insertion order.
func (s *Store) GetAll() []model.KnowledgeEntry {
	out := make([]model.KnowledgeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) GetByCategory(category string) []model.KnowledgeEntry {
	out := make([]model.KnowledgeEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if strings.EqualFold(entry.Category, category) {
			out = append(out, entry)
		}
	}
	return out
}

// SearchKeyword does a case-insensitive substring match over title, content
// and tags. It is a degraded fallback for when embeddings are unavailable,
// never the primary ranking path.
func (s *Store) SearchKeyword(query string) []model.KnowledgeEntry {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return nil
	}
	out := make([]model.KnowledgeEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if s.matches(entry, lower) {
			out = append(out, entry)
		}
	}
	return out
}

func (s *Store) matches(entry model.KnowledgeEntry, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(entry.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Content), lowerQuery) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

func (s *Store) Len() int {
	return len(s.entries)
}
