package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"imobhub/internal/model"
	repo_ps "imobhub/internal/repository/postgres"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestImporter(t *testing.T) (*Importer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Property{}))

	return NewImporter(repo_ps.NewPropertyRepository(db), zaptest.NewLogger(t)), db
}

func feedWithRefIDs(refIDs ...string) string {
	raw := `<?xml version="1.0"?><Listings>`
	for _, id := range refIDs {
		raw += fmt.Sprintf(
			"<Listing><ListingID>%s</ListingID><Title>Imovel %s</Title><ListPrice>100000</ListPrice></Listing>",
			id, id,
		)
	}
	return raw + `</Listings>`
}

func countRows(t *testing.T, db *gorm.DB, origin string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Property{}).Where("origin = ?", origin).Count(&count).Error)
	return count
}

func TestImportFeed_Upserts(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	result, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B", "C"))
	require.NoError(t, err)
	require.Equal(t, 3, result.Parsed)
	require.Equal(t, 3, result.Saved)
	require.Equal(t, 0, result.Pruned)
	require.EqualValues(t, 3, countRows(t, db, "vivareal"))
}

func TestImportFeed_IdenticalFeedIsIdempotent(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	raw := feedWithRefIDs("A", "B", "C")
	_, err := importer.ImportFeed(ctx, "vivareal", raw)
	require.NoError(t, err)

	result, err := importer.ImportFeed(ctx, "vivareal", raw)
	require.NoError(t, err)
	require.Equal(t, 3, result.Saved)
	require.Equal(t, 0, result.Pruned)

	// Same row count, no duplicates.
	require.EqualValues(t, 3, countRows(t, db, "vivareal"))
}

func TestImportFeed_PrunesStaleRecords(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	_, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B", "C"))
	require.NoError(t, err)

	result, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B"))
	require.NoError(t, err)
	require.Equal(t, 2, result.Saved)
	require.Equal(t, 1, result.Pruned)

	var refIDs []string
	require.NoError(t, db.Model(&model.Property{}).
		Where("origin = ?", "vivareal").
		Order("ref_id").
		Pluck("ref_id", &refIDs).Error)
	require.Equal(t, []string{"A", "B"}, refIDs)
}

func TestImportFeed_PruneIsScopedToOrigin(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	_, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B"))
	require.NoError(t, err)
	_, err = importer.ImportFeed(ctx, "olx", feedWithRefIDs("A", "X"))
	require.NoError(t, err)

	// Re-importing one origin must not touch the other.
	_, err = importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A"))
	require.NoError(t, err)

	require.EqualValues(t, 1, countRows(t, db, "vivareal"))
	require.EqualValues(t, 2, countRows(t, db, "olx"))
}

func TestImportFeed_UpdatesInPlace(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	_, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A"))
	require.NoError(t, err)

	updated := `<?xml version="1.0"?><Listings>
	<Listing><ListingID>A</ListingID><Title>Titulo novo</Title><ListPrice>250000</ListPrice></Listing>
	</Listings>`
	_, err = importer.ImportFeed(ctx, "vivareal", updated)
	require.NoError(t, err)

	var property model.Property
	require.NoError(t, db.Where("origin = ? AND ref_id = ?", "vivareal", "A").First(&property).Error)
	require.Equal(t, "Titulo novo", property.Title)
	require.EqualValues(t, 250000, property.Price)
	require.EqualValues(t, 1, countRows(t, db, "vivareal"))
}

func TestImportFeed_PrunedRecordResurrects(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	_, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B", "C"))
	require.NoError(t, err)

	// C falls out of the feed and is pruned.
	_, err = importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B"))
	require.NoError(t, err)
	require.EqualValues(t, 2, countRows(t, db, "vivareal"))

	// C comes back: the upsert must make it visible again, not leave a
	// tombstone behind the unique index.
	result, err := importer.ImportFeed(ctx, "vivareal", feedWithRefIDs("A", "B", "C"))
	require.NoError(t, err)
	require.Equal(t, 3, result.Saved)
	require.EqualValues(t, 3, countRows(t, db, "vivareal"))

	var refIDs []string
	require.NoError(t, db.Model(&model.Property{}).
		Where("origin = ?", "vivareal").
		Order("ref_id").
		Pluck("ref_id", &refIDs).Error)
	require.Equal(t, []string{"A", "B", "C"}, refIDs)
}

func TestImportFeed_InvalidContentWritesNothing(t *testing.T) {
	importer, db := newTestImporter(t)
	ctx := context.Background()

	_, err := importer.ImportFeed(ctx, "vivareal", "<broken>")
	require.True(t, errors.Is(err, ErrInvalidContent))
	require.EqualValues(t, 0, countRows(t, db, "vivareal"))
}
