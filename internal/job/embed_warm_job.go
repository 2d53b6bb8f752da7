package job

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/nikalabs/walletchat/internal/embedcache"
	"github.com/nikalabs/walletchat/internal/knowledge"
	"github.com/nikalabs/walletchat/internal/service"
)

// EmbedWarmJob walks the knowledge corpus and runs every entry through the
// embedding cache, so the first chat after a restart or cache expiry does not
// pay one provider round trip per entry inside the request path.
type EmbedWarmJob struct {
	cache *embedcache.Cache
	store *knowledge.Store
}

func NewEmbedWarmJob(cache *embedcache.Cache, store *knowledge.Store) *EmbedWarmJob {
	return &EmbedWarmJob{cache: cache, store: store}
}

func (j *EmbedWarmJob) Name() string {
	return "embed_warm"
}

func (j *EmbedWarmJob) Run(ctx context.Context) error {
	if j.cache == nil || j.store == nil {
		return nil
	}
	logger := logutil.GetLogger(ctx)
	var failed int
	for _, entry := range j.store.GetAll() {
		if _, err := j.cache.Get(ctx, service.EntryEmbedText(entry)); err != nil {
			failed++
			logger.Warn("warm embedding failed", zap.String("entry_id", entry.ID), zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("warm embeddings: %d of %d entries failed", failed, j.store.Len())
	}
	return nil
}
