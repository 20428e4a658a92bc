//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"aimrealty.com/estateapi/internal/bootstrap"
	"aimrealty.com/estateapi/internal/model"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user := &model.User{
		Username:     fmt.Sprintf("%s-%s", role, suffix),
		Email:        fmt.Sprintf("%s-%s@test.local", role, suffix),
		PasswordHash: "x",
	}

	var r model.Role
	require.NoError(t, db.Where("name = ?", role).FirstOrCreate(&r, model.Role{Name: role}).Error)
	user.RoleID = &r.ID

	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() {
		db.Delete(&model.User{}, "id = ?", user.ID)
	})
	return user
}

func TestDeleteRemovesChildRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	repo := NewPropertyRepository(db)
	favorites := NewFavoriteRepository(db)

	agent := createTestUser(t, db, model.RoleAgent)
	customer := createTestUser(t, db, model.RoleCustomer)

	slug := "cascade-check-" + uuid.NewString()[:8]
	property := &model.Property{
		Title:       "Cascade check",
		Type:        "house",
		ListingType: model.ListingTypeSale,
		Price:       decimal.RequireFromString("120000.00"),
		Currency:    "USD",
		City:        "Erbil",
		Country:     "Iraq",
		Status:      model.PropertyStatusActive,
		Language:    model.LangEnglish,
		Slug:        &slug,
		AgentID:     &agent.ID,
	}

	require.NoError(t, repo.Create(ctx, property,
		[]string{"https://img.test/a.webp", "https://img.test/b.webp"},
		[]string{"pool", "garden"},
		[]string{"corner lot"},
	))
	require.NoError(t, favorites.Add(ctx, customer.ID, property.ID))

	require.NoError(t, repo.Delete(ctx, property.ID))

	_, err := repo.FindByID(ctx, property.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	childTables := []any{
		&model.PropertyImage{},
		&model.PropertyAmenity{},
		&model.PropertyFeature{},
		&model.Favorite{},
	}
	for _, tbl := range childTables {
		var count int64
		require.NoError(t, db.Model(tbl).Where("property_id = ?", property.ID).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", tbl)
	}
}
