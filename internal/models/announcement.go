package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnnouncementSchemaVersion is stamped on every stored announcement. Bump it
// together with a migration that rewrites older rows.
const AnnouncementSchemaVersion = 1

const (
	TypeBirth   = "birth"
	TypeDeath   = "death"
	TypeWedding = "wedding"
)

var AnnouncementTypes = []string{TypeBirth, TypeDeath, TypeWedding}

type Relative struct {
	Name        string `bson:"name" json:"name"`
	PartnerName string `bson:"partnerName,omitempty" json:"partnerName,omitempty"`
	City        *int   `bson:"city" json:"city"`
	Children    string `bson:"children,omitempty" json:"children,omitempty"`
}

type Announcement struct {
	ID            string `gorm:"primaryKey;size:24" bson:"_id" json:"_id"`
	UserID        string `gorm:"size:24;not null;index:idx_announcements_user_created,priority:1" bson:"userId" json:"userId"`
	SchemaVersion int    `gorm:"not null;default:1" bson:"schemaVersion" json:"schemaVersion"`
	Type          string `gorm:"size:16;index" bson:"type,omitempty" json:"type,omitempty"`

	FirstName     string `gorm:"size:50;not null" bson:"firstName" json:"firstName"`
	LastName      string `gorm:"size:50;not null" bson:"lastName" json:"lastName"`
	PartnerName   string `gorm:"size:50" bson:"partnerName,omitempty" json:"partnerName,omitempty"`
	City          *int   `bson:"city,omitempty" json:"city,omitempty"`
	MaritalStatus string `gorm:"size:16" bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`

	PlaceOfBirth  string `gorm:"size:500" bson:"placeOfBirth,omitempty" json:"placeOfBirth,omitempty"`
	PlaceOfDeath  string `gorm:"size:500" bson:"placeOfDeath,omitempty" json:"placeOfDeath,omitempty"`
	ServicePlace  string `gorm:"size:500" bson:"servicePlace,omitempty" json:"servicePlace,omitempty"`
	FuneralPlace  string `gorm:"size:500" bson:"funeralPlace,omitempty" json:"funeralPlace,omitempty"`
	SpecialThanks string `gorm:"size:1000" bson:"specialThanks,omitempty" json:"specialThanks,omitempty"`
	Obituary      string `gorm:"type:text;not null" bson:"obituary" json:"obituary"`

	DateOfBirth string `gorm:"size:10" bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	DateOfDeath string `gorm:"size:10" bson:"dateOfDeath,omitempty" json:"dateOfDeath,omitempty"`
	ServiceDate string `gorm:"size:10" bson:"serviceDate,omitempty" json:"serviceDate,omitempty"`
	ServiceTime string `gorm:"size:5" bson:"serviceTime,omitempty" json:"serviceTime,omitempty"`
	FuneralTime string `gorm:"size:5" bson:"funeralTime,omitempty" json:"funeralTime,omitempty"`

	ClosestFamilyCircle *bool                        `bson:"closestFamilyCircle,omitempty" json:"closestFamilyCircle,omitempty"`
	FamilyRoles         datatypes.JSONSlice[string]   `bson:"familyRoles" json:"familyRoles"`
	Relatives           datatypes.JSONSlice[Relative] `bson:"relatives" json:"relatives"`
	NonProfits          datatypes.JSONSlice[string]   `bson:"nonProfits" json:"nonProfits"`

	CreatedAt time.Time `gorm:"index:idx_announcements_user_created,priority:2" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RelativePayload struct {
	Name        string  `json:"name" validate:"required,min=3,max=50"`
	PartnerName string  `json:"partnerName" validate:"omitempty,min=5,max=50"`
	Children    *string `json:"children" validate:"omitempty,nonempty,oneof=yes no"`
	City        *int    `json:"city"`
}

// AnnouncementPayload is the allow-list for announcement writes. Anything the
// client sends outside these fields (ids, owner, timestamps) is dropped while
// decoding. Optional text fields are pointers so that an explicit "" is told
// apart from an absent field; only partnerName accepts "".
type AnnouncementPayload struct {
	FirstName           string            `json:"firstName" validate:"required,min=3,max=50"`
	LastName            string            `json:"lastName" validate:"required,min=3,max=50"`
	PartnerName         string            `json:"partnerName" validate:"omitempty,min=3,max=50"`
	PlaceOfBirth        *string           `json:"placeOfBirth" validate:"omitempty,nonempty,min=3,max=500"`
	PlaceOfDeath        *string           `json:"placeOfDeath" validate:"omitempty,nonempty,min=3,max=500"`
	FuneralPlace        *string           `json:"funeralPlace" validate:"omitempty,nonempty,min=3,max=500"`
	ServicePlace        *string           `json:"servicePlace" validate:"omitempty,nonempty,min=3,max=500"`
	SpecialThanks       *string           `json:"specialThanks" validate:"omitempty,nonempty,min=3,max=1000"`
	Obituary            string            `json:"obituary" validate:"required,min=10,max=5000"`
	City                *int              `json:"city"`
	FamilyRoles         []string          `json:"familyRoles" validate:"omitempty,dive,nonempty"`
	MaritalStatus       *string           `json:"maritalStatus" validate:"omitempty,nonempty,oneof=single married partner husband wife"`
	DateOfBirth         *string           `json:"dateOfBirth" validate:"omitempty,nonempty,len=10"`
	DateOfDeath         *string           `json:"dateOfDeath" validate:"omitempty,nonempty,len=10"`
	ServiceDate         *string           `json:"serviceDate" validate:"omitempty,nonempty,len=10"`
	ServiceTime         *string           `json:"serviceTime" validate:"omitempty,nonempty,len=5"`
	FuneralTime         *string           `json:"funeralTime" validate:"omitempty,nonempty,len=5"`
	Type                *string           `json:"type" validate:"omitempty,nonempty,oneof=birth death wedding"`
	ClosestFamilyCircle *bool             `json:"closestFamilyCircle"`
	Relatives           []RelativePayload `json:"relatives" validate:"omitempty,dive"`
	NonProfits          []string          `json:"nonProfits" validate:"omitempty,dive,objectid"`
}

// Build turns a validated payload into a document owned by userID. Ids and
// timestamps are assigned by the store.
func (p AnnouncementPayload) Build(userID string) Announcement {
	relatives := make([]Relative, 0, len(p.Relatives))
	for _, r := range p.Relatives {
		relatives = append(relatives, Relative{
			Name:        r.Name,
			PartnerName: r.PartnerName,
			City:        r.City,
			Children:    value(r.Children),
		})
	}

	return Announcement{
		UserID:              userID,
		SchemaVersion:       AnnouncementSchemaVersion,
		Type:                value(p.Type),
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		PartnerName:         p.PartnerName,
		City:                p.City,
		MaritalStatus:       value(p.MaritalStatus),
		PlaceOfBirth:        value(p.PlaceOfBirth),
		PlaceOfDeath:        value(p.PlaceOfDeath),
		ServicePlace:        value(p.ServicePlace),
		FuneralPlace:        value(p.FuneralPlace),
		SpecialThanks:       value(p.SpecialThanks),
		Obituary:            p.Obituary,
		DateOfBirth:         value(p.DateOfBirth),
		DateOfDeath:         value(p.DateOfDeath),
		ServiceDate:         value(p.ServiceDate),
		ServiceTime:         value(p.ServiceTime),
		FuneralTime:         value(p.FuneralTime),
		ClosestFamilyCircle: p.ClosestFamilyCircle,
		FamilyRoles:         nonNil(p.FamilyRoles),
		Relatives:           relatives,
		NonProfits:          nonNil(p.NonProfits),
	}
}

// Normalize replaces nil collections with empty ones so every backend
// serializes them as [].
func (a *Announcement) Normalize() {
	if a.FamilyRoles == nil {
		a.FamilyRoles = []string{}
	}
	if a.Relatives == nil {
		a.Relatives = []Relative{}
	}
	if a.NonProfits == nil {
		a.NonProfits = []string{}
	}
}

func IsAnnouncementType(value string) bool {
	for _, t := range AnnouncementTypes {
		if t == value {
			return true
		}
	}
	return false
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
