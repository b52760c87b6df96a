package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
)

// CachedVideoMetadataAdapter wraps VideoMetadataAdapter with caching of
// reuse lookups. Reuse hits are the hot path of the pipeline: a cached hit
// skips both the database round trip and the whole generation sequence.
type CachedVideoMetadataAdapter struct {
	adapter repositories.VideoMetadataRepository
	cache   providers.CacheProvider
}

// NewCachedVideoMetadataAdapter creates a new cached video metadata adapter.
func NewCachedVideoMetadataAdapter(adapter repositories.VideoMetadataRepository, cache providers.CacheProvider) repositories.VideoMetadataRepository {
	return &CachedVideoMetadataAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// reuseTTL is deliberately short relative to video immutability: it bounds
// the staleness window after a force-regenerate replaces the newest row.
const reuseTTL = 600 // seconds

func reuseCacheKey(caseKey string) string {
	return fmt.Sprintf("video:reuse:%s", caseKey)
}

// FindByCaseKey retrieves the reuse row with caching. Cache misses and
// negative lookups fall through to the database; only found rows are cached.
func (a *CachedVideoMetadataAdapter) FindByCaseKey(ctx context.Context, caseKey string) (*entities.VideoMetadata, error) {
	cacheKey := reuseCacheKey(caseKey)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var metadata entities.VideoMetadata
		if err := json.Unmarshal(cached, &metadata); err == nil {
			return &metadata, nil
		}
		observability.GetLogger().Warn().
			Str("case_key", caseKey).
			Msg("failed to unmarshal cached reuse row, falling through to database")
	}

	metadata, err := a.adapter.FindByCaseKey(ctx, caseKey)
	if err != nil || metadata == nil {
		return metadata, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(metadata); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, reuseTTL); err != nil {
				observability.GetLogger().Warn().
					Str("case_key", caseKey).
					Err(err).
					Msg("failed to cache reuse row")
			}
		}
	}()

	return metadata, nil
}

// Create inserts the row and refreshes the cache so the new video becomes
// the reuse candidate immediately.
func (a *CachedVideoMetadataAdapter) Create(ctx context.Context, metadata *entities.VideoMetadata) error {
	if err := a.adapter.Create(ctx, metadata); err != nil {
		return err
	}

	if metadata.CaseKey != "" {
		if data, err := json.Marshal(metadata); err == nil {
			if err := a.cache.Set(ctx, reuseCacheKey(metadata.CaseKey), data, reuseTTL); err != nil {
				observability.GetLogger().Warn().
					Str("case_key", metadata.CaseKey).
					Err(err).
					Msg("failed to refresh reuse cache after insert")
			}
		}
	}

	return nil
}
