package postgres

import (
	"context"
	"testing"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Property{}, &model.Lead{}, &model.Tenant{}))
	return db
}

func sampleProperty(origin, refID string, price float64) model.Property {
	return model.Property{
		Origin:   origin,
		RefID:    refID,
		Title:    "Imovel " + refID,
		Price:    price,
		DealType: model.DealVenda,
	}
}

func TestPropertyRepository_UpsertBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	batch := []model.Property{
		sampleProperty("olx", "A", 100000),
		sampleProperty("olx", "B", 200000),
	}
	require.NoError(t, repo.UpsertBatch(ctx, batch))

	// Same keys with new values update in place.
	batch = []model.Property{sampleProperty("olx", "A", 150000)}
	require.NoError(t, repo.UpsertBatch(ctx, batch))

	count, err := repo.CountByOrigin(ctx, "olx")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	var stored model.Property
	require.NoError(t, db.Where("origin = ? AND ref_id = ?", "olx", "A").First(&stored).Error)
	require.EqualValues(t, 150000, stored.Price)
}

func TestPropertyRepository_RefIDsAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []model.Property{
		sampleProperty("olx", "A", 1),
		sampleProperty("olx", "B", 2),
		sampleProperty("vivareal", "A", 3),
	}))

	refIDs, err := repo.ListRefIDsByOrigin(ctx, "olx")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "B"}, refIDs)

	require.NoError(t, repo.DeleteByRefIDs(ctx, "olx", []string{"A"}))

	refIDs, err = repo.ListRefIDsByOrigin(ctx, "olx")
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, refIDs)

	// The other origin keeps its record with the same ref id.
	refIDs, err = repo.ListRefIDsByOrigin(ctx, "vivareal")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, refIDs)
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	rental := sampleProperty("olx", "R", 2500)
	rental.DealType = model.DealAluguel
	require.NoError(t, repo.UpsertBatch(ctx, []model.Property{
		sampleProperty("olx", "A", 1),
		sampleProperty("vivareal", "B", 2),
		rental,
	}))

	all, err := repo.List(ctx, domain.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byOrigin, err := repo.List(ctx, domain.PropertyFilter{Origin: "olx"})
	require.NoError(t, err)
	require.Len(t, byOrigin, 2)

	rentals, err := repo.List(ctx, domain.PropertyFilter{DealType: model.DealAluguel})
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	require.Equal(t, "R", rentals[0].RefID)
}

func TestLeadRepository_SheetSyncFlow(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadRepository(db)
	ctx := context.Background()

	lead := model.Lead{TenantID: 1, Name: "Joana Prado"}
	require.NoError(t, repo.Insert(ctx, &lead))

	unsynced, err := repo.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)

	require.NoError(t, repo.MarkSheetSynced(ctx, lead.ID, true))

	unsynced, err = repo.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Empty(t, unsynced)
}
