package gormstore_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidings-dev/tidings/db"
	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/store/gormstore"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.Open(context.Background(), config.DBConfig{
		Driver:           config.DriverSQLite,
		ConnectionString: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns:     1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	s := gormstore.New(gormDB)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func announcement(userID, first, last string) *models.Announcement {
	return &models.Announcement{
		UserID:        userID,
		SchemaVersion: models.AnnouncementSchemaVersion,
		FirstName:     first,
		LastName:      last,
		Obituary:      "A long and happy life.",
		Type:          models.TypeDeath,
		FamilyRoles:   []string{"mother"},
		Relatives:     []models.Relative{{Name: "Jussi", Children: "yes"}},
		NonProfits:    []string{},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	gormDB, err := db.Open(context.Background(), config.DBConfig{
		Driver:           config.DriverSQLite,
		ConnectionString: "file:migrate_twice?mode=memory&cache=shared",
		MaxOpenConns:     1,
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(gormDB))
	require.NoError(t, db.Migrate(gormDB))

	var count int64
	require.NoError(t, gormDB.Model(&db.SchemaMigration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	user := &models.User{Email: "anna@example.com", Password: "digest"}
	require.NoError(t, s.Users.Create(ctx, user))
	assert.Len(t, user.ID, 24)

	found, err := s.Users.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = s.Users.Create(ctx, &models.User{Email: "anna@example.com", Password: "digest"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	found.Name = "Anna"
	require.NoError(t, s.Users.Update(ctx, found))

	reloaded, err := s.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", reloaded.Name)

	_, err = s.Users.FindByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.Users.Update(ctx, &models.User{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "x@example.com"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAnnouncementRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	created := announcement("64b7f0c2a1b2c3d4e5f60718", "Maria", "Virtanen")
	require.NoError(t, s.Announcements.Create(ctx, created))
	assert.Equal(t, models.AnnouncementSchemaVersion, created.SchemaVersion)

	found, err := s.Announcements.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.FirstName, found.FirstName)
	assert.Equal(t, []string{"mother"}, []string(found.FamilyRoles))
	require.Len(t, found.Relatives, 1)
	assert.Equal(t, "Jussi", found.Relatives[0].Name)
	assert.Equal(t, []string{}, []string(found.NonProfits))
}

func TestAnnouncementListSortingAndFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	owner := "64b7f0c2a1b2c3d4e5f60718"
	other := "64b7f0c2a1b2c3d4e5f60719"

	first := announcement(owner, "Maria", "Virtanen")
	require.NoError(t, s.Announcements.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := announcement(other, "Aino", "Aalto")
	second.Type = models.TypeBirth
	require.NoError(t, s.Announcements.Create(ctx, second))

	newest, err := s.Announcements.List(ctx, store.AnnouncementFilter{Sorting: store.SortNewest})
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)

	oldest, err := s.Announcements.List(ctx, store.AnnouncementFilter{Sorting: store.SortOldest})
	require.NoError(t, err)
	assert.Equal(t, first.ID, oldest[0].ID)

	byName, err := s.Announcements.List(ctx, store.AnnouncementFilter{Sorting: store.SortNameAsc})
	require.NoError(t, err)
	assert.Equal(t, "Aalto", byName[0].LastName)

	own, err := s.Announcements.List(ctx, store.AnnouncementFilter{UserID: owner})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, first.ID, own[0].ID)

	births, err := s.Announcements.List(ctx, store.AnnouncementFilter{Type: models.TypeBirth})
	require.NoError(t, err)
	require.Len(t, births, 1)
	assert.Equal(t, second.ID, births[0].ID)
}

func TestAnnouncementReplaceAndDeleteAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	owner := "64b7f0c2a1b2c3d4e5f60718"
	created := announcement(owner, "Maria", "Virtanen")
	require.NoError(t, s.Announcements.Create(ctx, created))

	replacement := announcement("64b7f0c2a1b2c3d4e5f60719", "Maija", "Virtanen")
	replacement.ID = created.ID
	assert.ErrorIs(t, s.Announcements.Replace(ctx, replacement), store.ErrNotFound)

	replacement = announcement(owner, "Maija", "Virtanen")
	replacement.ID = created.ID
	replacement.Relatives = nil
	require.NoError(t, s.Announcements.Replace(ctx, replacement))

	found, err := s.Announcements.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maija", found.FirstName)
	assert.Empty(t, found.Relatives)
	assert.True(t, found.CreatedAt.Equal(created.CreatedAt))

	_, err = s.Announcements.Delete(ctx, created.ID, "64b7f0c2a1b2c3d4e5f60719")
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := s.Announcements.Delete(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Maija", deleted.FirstName)

	_, err = s.Announcements.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCityUpsertAndSorting(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Cities.Upsert(ctx, []models.City{
		{ID: 2, Name: "Turku", Municipality: "Turku"},
		{ID: 1, Name: "Helsinki", Municipality: "Helsinki"},
	}))
	require.NoError(t, s.Cities.Upsert(ctx, []models.City{
		{ID: 2, Name: "Abo", Municipality: "Turku"},
	}))

	byName, err := s.Cities.List(ctx, store.CitySortName)
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Abo", byName[0].Name)

	byID, err := s.Cities.List(ctx, store.CitySortID)
	require.NoError(t, err)
	assert.Equal(t, 1, byID[0].ID)

	city, err := s.Cities.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Abo", city.Name)
}

func TestParseSortingFallsBackToNewest(t *testing.T) {
	assert.Equal(t, store.SortNewest, store.ParseSorting("random"))
	assert.Equal(t, store.SortNameDesc, store.ParseSorting("NAME_DESC"))
	assert.Equal(t, store.CitySortName, store.ParseCitySorting(""))
	assert.Equal(t, store.CitySortID, store.ParseCitySorting("id"))
}
