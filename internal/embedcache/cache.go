package embedcache

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/nikalabs/walletchat/internal/ai"
)

const (
	// DefaultTTL is how long a cached embedding stays usable.
	DefaultTTL = 24 * time.Hour
	// keyPrefixLen caps the cache key at the first 100 bytes of the input.
	// Distinct texts sharing a long prefix collide; the corpus is small and
	// curated, so the cheaper key wins over hashing the full text.
	keyPrefixLen = 100
)

type record struct {
	embedding []float32
	createdAt time.Time
}

// Cache memoizes embeddings from the wrapped embedder. Records expire after
// the TTL but stay in the map until the next lookup overwrites them; there is
// no size cap since the working set is one key per knowledge entry plus
// recent user queries.
type Cache struct {
	next ai.IEmbedder
	ttl  time.Duration

	mu      sync.Mutex
	records map[string]record

	now func() time.Time
}

func New(next ai.IEmbedder, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		next:    next,
		ttl:     ttl,
		records: make(map[string]record),
		now:     time.Now,
	}
}

// Get returns the cached embedding for text when a fresh record exists,
// otherwise embeds through the wrapped provider and stores the result.
// Provider errors propagate without touching the cache.
func (c *Cache) Get(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	c.mu.Lock()
	rec, ok := c.records[key]
	c.mu.Unlock()
	if ok && c.now().Sub(rec.createdAt) < c.ttl {
		logutil.GetLogger(ctx).Debug("embedding cache hit", zap.Int("key_len", len(key)))
		return cloneEmbedding(rec.embedding), nil
	}

	embedding, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.records[key] = record{embedding: cloneEmbedding(embedding), createdAt: c.now()}
	c.mu.Unlock()
	return embedding, nil
}

// Embed makes Cache usable anywhere an ai.IEmbedder is expected.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.Get(ctx, text)
}

func (c *Cache) ModelName() string {
	return c.next.ModelName()
}

// Clear drops every record.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.records = make(map[string]record)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func cacheKey(text string) string {
	if len(text) <= keyPrefixLen {
		return text
	}
	return text[:keyPrefixLen]
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
