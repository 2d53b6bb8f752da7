package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nikalabs/walletchat/internal/embedcache"
	"github.com/nikalabs/walletchat/internal/knowledge"
	"github.com/nikalabs/walletchat/internal/model"
)

// Entries scoring at or below this are treated as noise and dropped even
// when fewer than topK survive. Dense embeddings are noisy; 0.5 keeps only
// clearly related entries.
const similarityThreshold = float32(0.5)

// RetrievalService ranks knowledge entries against a query by embedding
// cosine similarity. Embeddings go through the shared cache so the static
// corpus is only re-embedded after the cache TTL lapses.
type RetrievalService struct {
	cache *embedcache.Cache
	store *knowledge.Store
}

func NewRetrievalService(cache *embedcache.Cache, store *knowledge.Store) *RetrievalService {
	return &RetrievalService{cache: cache, store: store}
}

// Rank returns at most topK entries ordered by descending similarity to
// query, ties broken by corpus order. Any embedding failure aborts the whole
// ranking; callers degrade to zero context rather than a partial result.
func (s *RetrievalService) Rank(ctx context.Context, query string, topK int) ([]model.KnowledgeEntry, error) {
	if topK <= 0 {
		return nil, nil
	}
	entries := s.store.GetAll()
	if len(entries) == 0 {
		return nil, nil
	}

	queryEmb, err := s.cache.Get(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scores := make([]float32, len(entries))
	eg, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		eg.Go(func() error {
			entryEmb, err := s.cache.Get(gctx, EntryEmbedText(entry))
			if err != nil {
				return fmt.Errorf("embed entry %s: %w", entry.ID, err)
			}
			score, err := cosineSimilarity(queryEmb, entryEmb)
			if err != nil {
				return fmt.Errorf("score entry %s: %w", entry.ID, err)
			}
			scores[i] = score
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	result := make([]model.KnowledgeEntry, 0, topK)
	for _, idx := range order {
		if scores[idx] <= similarityThreshold {
			continue
		}
		logutil.GetLogger(ctx).Debug("knowledge match",
			zap.String("entry_id", entries[idx].ID),
			zap.Float32("score", scores[idx]))
		result = append(result, entries[idx])
		if len(result) >= topK {
			break
		}
	}
	return result, nil
}

// EntryEmbedText mixes title and content so both contribute to recall.
func EntryEmbedText(entry model.KnowledgeEntry) string {
	return entry.Title + "\n" + entry.Content
}

// FormatContext renders ranked entries into the context block appended to the
// system prompt. Empty input yields an empty string so no block is emitted.
func FormatContext(entries []model.KnowledgeEntry) string {
	if len(entries) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, fmt.Sprintf("[%s] %s:\n%s\n", entry.Category, entry.Title, entry.Content))
	}
	return "\n\nBUSINESS KNOWLEDGE CONTEXT (use this to answer questions accurately):\n" +
		strings.Join(blocks, "\n---\n")
}

func cosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}
