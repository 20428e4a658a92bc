package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type fakeWaveRepo struct {
	permissions map[string]*model.CustomerWavePermission
}

func permKey(userID, waveID uuid.UUID) string {
	return userID.String() + ":" + waveID.String()
}

func (f *fakeWaveRepo) Create(ctx context.Context, wave *model.Wave) error { return nil }
func (f *fakeWaveRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Wave, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWaveRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.Wave, error) {
	return nil, nil
}
func (f *fakeWaveRepo) Update(ctx context.Context, wave *model.Wave) error { return nil }
func (f *fakeWaveRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeWaveRepo) GrantPermission(ctx context.Context, perm *model.CustomerWavePermission) error {
	f.permissions[permKey(perm.UserID, perm.WaveID)] = perm
	return nil
}
func (f *fakeWaveRepo) FindPermission(ctx context.Context, userID, waveID uuid.UUID) (*model.CustomerWavePermission, error) {
	perm, ok := f.permissions[permKey(userID, waveID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return perm, nil
}
func (f *fakeWaveRepo) AdjustUsed(ctx context.Context, userID, waveID uuid.UUID, delta int) error {
	if perm, ok := f.permissions[permKey(userID, waveID)]; ok {
		perm.UsedProperties += delta
	}
	return nil
}

func TestCheckWaveQuota(t *testing.T) {
	waveID := uuid.New()
	agent := &model.User{ID: uuid.New(), Role: model.Role{Name: model.RoleAgent}}
	admin := &model.User{ID: uuid.New(), Role: model.Role{Name: model.RoleAdmin}}

	repo := &fakeWaveRepo{permissions: map[string]*model.CustomerWavePermission{
		permKey(agent.ID, waveID): {
			UserID:         agent.ID,
			WaveID:         waveID,
			MaxProperties:  2,
			UsedProperties: 0,
		},
	}}

	svc := &propertyService{waveRepo: repo}
	ctx := context.Background()

	assert.NoError(t, svc.checkWaveQuota(ctx, agent, waveID))

	repo.permissions[permKey(agent.ID, waveID)].UsedProperties = 2
	assert.ErrorIs(t, svc.checkWaveQuota(ctx, agent, waveID), apperror.ErrQuotaExceeded)

	// Admins are never quota limited.
	assert.NoError(t, svc.checkWaveQuota(ctx, admin, waveID))

	// No permission row at all means the wave is off limits.
	other := &model.User{ID: uuid.New(), Role: model.Role{Name: model.RoleAgent}}
	assert.ErrorIs(t, svc.checkWaveQuota(ctx, other, waveID), apperror.ErrForbidden)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Modern Villa in Erbil", "modern-villa-in-erbil"},
		{"  Spacious   Apartment  ", "spacious-apartment"},
		{"3BR / 2BA — Downtown!", "3br-2ba-downtown"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestApplyPropertyUpdateKeepsSlug(t *testing.T) {
	slug := "original-slug"
	property := &model.Property{
		Title:    "Original",
		Slug:     &slug,
		Price:    decimal.NewFromInt(100000),
		Bedrooms: 2,
	}

	newTitle := "Renamed Listing"
	newPrice := decimal.NewFromInt(120000)
	applyPropertyUpdate(property, dto.UpdatePropertyInput{
		Title: &newTitle,
		Price: &newPrice,
	}, bluemonday.UGCPolicy())

	assert.Equal(t, "Renamed Listing", property.Title)
	assert.True(t, property.Price.Equal(newPrice))
	assert.Equal(t, "original-slug", *property.Slug)
	assert.Equal(t, 2, property.Bedrooms)
}

func TestApplyPropertyUpdateSanitizesDescription(t *testing.T) {
	property := &model.Property{}

	desc := `<p>Nice view</p><script>alert("x")</script>`
	applyPropertyUpdate(property, dto.UpdatePropertyInput{Description: &desc}, bluemonday.UGCPolicy())

	assert.Contains(t, property.Description, "Nice view")
	assert.NotContains(t, property.Description, "<script>")
}

// fakePropertyStore embeds the interface so only the methods Delete
// touches need real implementations.
type fakePropertyStore struct {
	repository.PropertyRepository
	properties map[uuid.UUID]*model.Property
	deleted    []uuid.UUID
}

func (f *fakePropertyStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePropertyStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.properties, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserDirectory struct {
	repository.UserRepository
	users map[string]*model.User
}

func (f *fakeUserDirectory) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

// fakeSearchIndex signals deletions so tests can wait for the async
// unindex without sleeping.
type fakeSearchIndex struct {
	deleted chan string
}

func (f *fakeSearchIndex) IndexProperty(property *model.Property) error { return nil }
func (f *fakeSearchIndex) DeleteProperty(id string) error {
	f.deleted <- id
	return nil
}
func (f *fakeSearchIndex) Search(query string, filter map[string]string, limit int) ([]string, int64, error) {
	return nil, 0, nil
}

type fakeImageBin struct {
	deleted []string
}

func (f *fakeImageBin) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	return "", nil
}

func (f *fakeImageBin) DeleteImage(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func TestDeleteRemovesStoredImages(t *testing.T) {
	agent := &model.User{ID: uuid.New(), Role: model.Role{Name: model.RoleAgent}}
	property := &model.Property{
		ID:      uuid.New(),
		Title:   "Old listing",
		AgentID: &agent.ID,
		Images: []model.PropertyImage{
			{ImageURL: "https://res.cloudinary.com/demo/image/upload/v1/aimrealty/properties/a.webp"},
			{ImageURL: "https://res.cloudinary.com/demo/image/upload/v1/aimrealty/properties/b.webp"},
		},
	}

	store := &fakePropertyStore{properties: map[uuid.UUID]*model.Property{property.ID: property}}
	users := &fakeUserDirectory{users: map[string]*model.User{agent.ID.String(): agent}}
	index := &fakeSearchIndex{deleted: make(chan string, 1)}
	images := &fakeImageBin{}

	svc := &propertyService{
		repo:         store,
		userRepo:     users,
		search:       index,
		imageStorage: images,
		logger:       zap.NewNop().Sugar(),
	}

	require.NoError(t, svc.Delete(context.Background(), agent.ID, property.ID))

	assert.Equal(t, []uuid.UUID{property.ID}, store.deleted)
	assert.Equal(t, []string{
		"https://res.cloudinary.com/demo/image/upload/v1/aimrealty/properties/a.webp",
		"https://res.cloudinary.com/demo/image/upload/v1/aimrealty/properties/b.webp",
	}, images.deleted)

	select {
	case id := <-index.deleted:
		assert.Equal(t, property.ID.String(), id)
	case <-time.After(time.Second):
		t.Fatal("property was never removed from the search index")
	}
}

func TestDeleteWithoutStorageConfigured(t *testing.T) {
	agent := &model.User{ID: uuid.New(), Role: model.Role{Name: model.RoleAgent}}
	property := &model.Property{
		ID:      uuid.New(),
		AgentID: &agent.ID,
		Images:  []model.PropertyImage{{ImageURL: "https://img.test/a.webp"}},
	}

	store := &fakePropertyStore{properties: map[uuid.UUID]*model.Property{property.ID: property}}
	users := &fakeUserDirectory{users: map[string]*model.User{agent.ID.String(): agent}}
	index := &fakeSearchIndex{deleted: make(chan string, 1)}

	svc := &propertyService{
		repo:     store,
		userRepo: users,
		search:   index,
		logger:   zap.NewNop().Sugar(),
	}

	require.NoError(t, svc.Delete(context.Background(), agent.ID, property.ID))
	assert.Equal(t, []uuid.UUID{property.ID}, store.deleted)
	<-index.deleted
}
