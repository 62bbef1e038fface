package store

import (
	"context"
	"errors"
	"strings"

	"github.com/tidings-dev/tidings/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Sorting is an allow-listed ordering for announcement listings.
type Sorting string

const (
	SortNewest   Sorting = "newest"
	SortOldest   Sorting = "oldest"
	SortNameAsc  Sorting = "name_asc"
	SortNameDesc Sorting = "name_desc"
)

// ParseSorting maps a query value onto the allow-list. Anything unknown
// falls back to SortNewest.
func ParseSorting(value string) Sorting {
	switch s := Sorting(strings.ToLower(strings.TrimSpace(value))); s {
	case SortNewest, SortOldest, SortNameAsc, SortNameDesc:
		return s
	default:
		return SortNewest
	}
}

type CitySorting string

const (
	CitySortName CitySorting = "name"
	CitySortID   CitySorting = "id"
)

func ParseCitySorting(value string) CitySorting {
	if CitySorting(strings.ToLower(strings.TrimSpace(value))) == CitySortID {
		return CitySortID
	}
	return CitySortName
}

type AnnouncementFilter struct {
	UserID  string
	Type    string
	Sorting Sorting
}

type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type Organizations interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByEmail(ctx context.Context, email string) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
}

type Announcements interface {
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error)
	FindByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	// Replace overwrites the document matching announcement.ID and
	// announcement.UserID, keeping its creation time.
	Replace(ctx context.Context, announcement *models.Announcement) error
	// Delete removes the document with id owned by userID and returns it.
	Delete(ctx context.Context, id, userID string) (*models.Announcement, error)
}

type Cities interface {
	List(ctx context.Context, sorting CitySorting) ([]models.City, error)
	FindByID(ctx context.Context, id int) (*models.City, error)
	Upsert(ctx context.Context, cities []models.City) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users         Users
	Organizations Organizations
	Announcements Announcements
	Cities        Cities

	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}
