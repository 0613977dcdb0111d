package feed

import (
	"context"

	"imobhub/internal/domain"

	"go.uber.org/zap"
)

const (
	upsertBatchSize = 50
	pruneChunkSize  = 100
)

// Importer writes normalized feeds into the property store and prunes
// records that fell out of the feed.
type Importer struct {
	logger     *zap.Logger
	Properties domain.PropertyRepo
}

func NewImporter(properties domain.PropertyRepo, logger *zap.Logger) *Importer {
	return &Importer{
		logger:     logger,
		Properties: properties,
	}
}

// Result reports what one import run did. Saved counts successful batches
// only; a feed with failed batches still reports success for the rest.
type Result struct {
	Origin string `json:"origin"`
	Parsed int    `json:"parsed"`
	Saved  int    `json:"saved"`
	Pruned int    `json:"pruned"`
}

// ImportFeed normalizes raw XML and upserts the records under the origin
// label, then deletes stored records of the same origin that the feed no
// longer contains. The feed is treated as the authoritative state for its
// origin.
func (i *Importer) ImportFeed(ctx context.Context, origin, raw string) (*Result, error) {
	properties, refIDs, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	for idx := range properties {
		properties[idx].Origin = origin
	}

	result := &Result{Origin: origin, Parsed: len(properties)}

	// Batched upsert. A failed batch is logged and skipped, the run
	// continues with the next batch.
	for start := 0; start < len(properties); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(properties) {
			end = len(properties)
		}
		batch := properties[start:end]
		if err := i.Properties.UpsertBatch(ctx, batch); err != nil {
			i.logger.Error("error upserting property batch",
				zap.Error(err),
				zap.String("origin", origin),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)))
			continue
		}
		result.Saved += len(batch)
	}

	result.Pruned = i.pruneStale(ctx, origin, refIDs)
	return result, nil
}

// pruneStale deletes records of the origin whose ref id was not seen in
// the current feed, in fixed chunks. Failures are logged, never fatal.
func (i *Importer) pruneStale(ctx context.Context, origin string, seenIDs []string) int {
	stored, err := i.Properties.ListRefIDsByOrigin(ctx, origin)
	if err != nil {
		i.logger.Error("error listing stored ref ids",
			zap.Error(err), zap.String("origin", origin))
		return 0
	}

	seen := make(map[string]struct{}, len(seenIDs))
	for _, id := range seenIDs {
		seen[id] = struct{}{}
	}

	var stale []string
	for _, id := range stored {
		if _, ok := seen[id]; !ok {
			stale = append(stale, id)
		}
	}

	pruned := 0
	for start := 0; start < len(stale); start += pruneChunkSize {
		end := start + pruneChunkSize
		if end > len(stale) {
			end = len(stale)
		}
		chunk := stale[start:end]
		if err := i.Properties.DeleteByRefIDs(ctx, origin, chunk); err != nil {
			i.logger.Error("error pruning stale properties",
				zap.Error(err),
				zap.String("origin", origin),
				zap.Int("chunk_size", len(chunk)))
			continue
		}
		pruned += len(chunk)
	}
	return pruned
}
