package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;size:24" bson:"_id" json:"_id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	Name      string    `gorm:"size:50" bson:"name,omitempty" json:"name,omitempty"`
	Password  string    `gorm:"not null" bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=50"`
}

type RegisterUserPayload struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=50"`
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
}

// UpdateUserPayload carries the optional profile changes. Empty fields are
// left untouched.
type UpdateUserPayload struct {
	Email    string `json:"email" validate:"omitempty,min=5,max=255,email"`
	Password string `json:"password" validate:"omitempty,min=5,max=50"`
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
}

func (p UpdateUserPayload) IsEmpty() bool {
	return p.Email == "" && p.Password == "" && p.Name == ""
}
