package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type fakeFavoriteRepo struct {
	set map[string]bool
}

func favKey(userID, propertyID uuid.UUID) string {
	return userID.String() + ":" + propertyID.String()
}

func (f *fakeFavoriteRepo) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	key := favKey(userID, propertyID)
	if f.set[key] {
		delete(f.set, key)
		return false, nil
	}
	f.set[key] = true
	return true, nil
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	f.set[favKey(userID, propertyID)] = true
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	delete(f.set, favKey(userID, propertyID))
	return nil
}

func (f *fakeFavoriteRepo) IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return f.set[favKey(userID, propertyID)], nil
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	return nil, nil
}

func (f *fakeFavoriteRepo) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var n int64
	for key, ok := range f.set {
		if ok && key[len(key)-36:] == propertyID.String() {
			n++
		}
	}
	return n, nil
}

// fakePropertyLookup embeds the interface so only FindByID needs a real
// implementation; anything else would panic if reached.
type fakePropertyLookup struct {
	repository.PropertyRepository
	properties map[uuid.UUID]*model.Property
}

func (f *fakePropertyLookup) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	if p, ok := f.properties[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestToggleRoundTripLeavesSetUnchanged(t *testing.T) {
	propertyID := uuid.New()
	userID := uuid.New()

	repo := &fakeFavoriteRepo{set: map[string]bool{}}
	lookup := &fakePropertyLookup{properties: map[uuid.UUID]*model.Property{
		propertyID: {ID: propertyID},
	}}

	svc := &favoriteService{repo: repo, propertyRepo: lookup}
	ctx := context.Background()

	first, err := svc.Toggle(ctx, userID, propertyID)
	require.NoError(t, err)
	assert.True(t, first.Favorited)
	assert.EqualValues(t, 1, first.Count)

	second, err := svc.Toggle(ctx, userID, propertyID)
	require.NoError(t, err)
	assert.False(t, second.Favorited)
	assert.EqualValues(t, 0, second.Count)

	favorited, err := repo.IsFavorited(ctx, userID, propertyID)
	require.NoError(t, err)
	assert.False(t, favorited, "round trip must restore the original set")
}

func TestToggleUnknownPropertyIsNotFound(t *testing.T) {
	repo := &fakeFavoriteRepo{set: map[string]bool{}}
	lookup := &fakePropertyLookup{properties: map[uuid.UUID]*model.Property{}}

	svc := &favoriteService{repo: repo, propertyRepo: lookup}

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestImportMergesGuestFavorites(t *testing.T) {
	userID := uuid.New()
	known := uuid.New()
	alreadyFavorited := uuid.New()
	unknown := uuid.New()

	repo := &fakeFavoriteRepo{set: map[string]bool{
		favKey(userID, alreadyFavorited): true,
	}}
	lookup := &fakePropertyLookup{properties: map[uuid.UUID]*model.Property{
		known:            {ID: known},
		alreadyFavorited: {ID: alreadyFavorited},
	}}

	svc := &favoriteService{repo: repo, propertyRepo: lookup}

	result, err := svc.Import(context.Background(), userID, []uuid.UUID{known, alreadyFavorited, unknown})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	favorited, err := repo.IsFavorited(context.Background(), userID, known)
	require.NoError(t, err)
	assert.True(t, favorited)

	// Duplicates stay single rows.
	count, err := repo.CountByProperty(context.Background(), alreadyFavorited)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
