package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
)

const (
	UsersCollection         = "users"
	OrganizationsCollection = "organizations"
	AnnouncementsCollection = "announcements"
	CitiesCollection        = "cities"
)

func New(database *mongo.Database) *store.Store {
	return &store.Store{
		Users:         &UserRepository{collection: database.Collection(UsersCollection)},
		Organizations: &OrganizationRepository{collection: database.Collection(OrganizationsCollection)},
		Announcements: &AnnouncementRepository{collection: database.Collection(AnnouncementsCollection)},
		Cities:        &CityRepository{collection: database.Collection(CitiesCollection)},
		Ping: func(ctx context.Context) error {
			return database.Client().Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			return database.Client().Disconnect(ctx)
		},
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type UserRepository struct {
	collection *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = newID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.collection.InsertOne(ctx, user)
	return translate("create user", err)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"email":     user.Email,
		"name":      user.Name,
		"password":  user.Password,
		"updatedAt": user.UpdatedAt,
	}})
	if err != nil {
		return translate("update user", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

type OrganizationRepository struct {
	collection *mongo.Collection
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	org.ID = newID()
	org.CreatedAt = now()
	org.UpdatedAt = org.CreatedAt

	_, err := r.collection.InsertOne(ctx, org)
	return translate("create organization", err)
}

func (r *OrganizationRepository) FindByEmail(ctx context.Context, email string) (*models.Organization, error) {
	var org models.Organization
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&org); err != nil {
		return nil, translate("find organization by email", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate("list organizations", err)
	}

	orgs := []models.Organization{}
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, translate("list organizations", err)
	}
	return orgs, nil
}

var announcementSort = map[store.Sorting]bson.D{
	store.SortNewest:   {{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	store.SortOldest:   {{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
	store.SortNameAsc:  {{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}, {Key: "_id", Value: 1}},
	store.SortNameDesc: {{Key: "lastName", Value: -1}, {Key: "firstName", Value: -1}, {Key: "_id", Value: -1}},
}

type AnnouncementRepository struct {
	collection *mongo.Collection
}

func (r *AnnouncementRepository) List(ctx context.Context, filter store.AnnouncementFilter) ([]models.Announcement, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	sort, ok := announcementSort[filter.Sorting]
	if !ok {
		sort = announcementSort[store.SortNewest]
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, translate("list announcements", err)
	}

	announcements := []models.Announcement{}
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, translate("list announcements", err)
	}

	for i := range announcements {
		announcements[i].Normalize()
	}
	return announcements, nil
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&announcement); err != nil {
		return nil, translate("find announcement", err)
	}

	announcement.Normalize()
	return &announcement, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = newID()
	announcement.SchemaVersion = models.AnnouncementSchemaVersion
	announcement.CreatedAt = now()
	announcement.UpdatedAt = announcement.CreatedAt
	announcement.Normalize()

	_, err := r.collection.InsertOne(ctx, announcement)
	return translate("create announcement", err)
}

func (r *AnnouncementRepository) Replace(ctx context.Context, announcement *models.Announcement) error {
	owned := bson.M{"_id": announcement.ID, "userId": announcement.UserID}

	var existing models.Announcement
	if err := r.collection.FindOne(ctx, owned).Decode(&existing); err != nil {
		return translate("replace announcement", err)
	}

	announcement.SchemaVersion = models.AnnouncementSchemaVersion
	announcement.CreatedAt = existing.CreatedAt
	announcement.UpdatedAt = now()
	announcement.Normalize()

	result, err := r.collection.ReplaceOne(ctx, owned, announcement)
	if err != nil {
		return translate("replace announcement", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id, userID string) (*models.Announcement, error) {
	var deleted models.Announcement

	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": userID}).Decode(&deleted)
	if err != nil {
		return nil, translate("delete announcement", err)
	}

	deleted.Normalize()
	return &deleted, nil
}

type CityRepository struct {
	collection *mongo.Collection
}

func (r *CityRepository) List(ctx context.Context, sorting store.CitySorting) ([]models.City, error) {
	sort := bson.D{{Key: "name", Value: 1}, {Key: "id", Value: 1}}
	if sorting == store.CitySortID {
		sort = bson.D{{Key: "id", Value: 1}}
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, translate("list cities", err)
	}

	cities := []models.City{}
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, translate("list cities", err)
	}
	return cities, nil
}

func (r *CityRepository) FindByID(ctx context.Context, id int) (*models.City, error) {
	var city models.City
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&city); err != nil {
		return nil, translate("find city", err)
	}
	return &city, nil
}

func (r *CityRepository) Upsert(ctx context.Context, cities []models.City) error {
	if len(cities) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(cities))
	for _, city := range cities {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": city.ID}).
			SetReplacement(city).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return translate("upsert cities", err)
}
