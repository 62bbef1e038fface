package models

import "time"

type Organization struct {
	ID            string    `gorm:"primaryKey;size:24" bson:"_id" json:"_id"`
	Email         string    `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	Password      string    `gorm:"not null" bson:"password" json:"-"`
	Name          string    `gorm:"size:50" bson:"name,omitempty" json:"name,omitempty"`
	Address       string    `gorm:"size:500" bson:"address,omitempty" json:"address,omitempty"`
	City          string    `gorm:"size:20" bson:"city,omitempty" json:"city,omitempty"`
	Homepage      string    `gorm:"size:50" bson:"homepage,omitempty" json:"homepage,omitempty"`
	Description   string    `gorm:"size:150" bson:"description,omitempty" json:"description,omitempty"`
	PostalCode    string    `gorm:"size:20" bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Logo          string    `gorm:"size:1000" bson:"logo,omitempty" json:"logo,omitempty"`
	IBAN          string    `gorm:"size:34" bson:"iban,omitempty" json:"iban,omitempty"`
	BIC           string    `gorm:"size:30" bson:"bic,omitempty" json:"bic,omitempty"`
	StripeAccount string    `gorm:"size:30" bson:"stripeAccount,omitempty" json:"stripeAccount,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type OrganizationPayload struct {
	Email         string `json:"email" validate:"required,min=5,max=255,email"`
	Password      string `json:"password" validate:"required,min=5,max=50"`
	Name          string `json:"name" validate:"omitempty,min=3,max=50"`
	Address       string `json:"address" validate:"omitempty,min=5,max=500"`
	City          string `json:"city" validate:"omitempty,min=3,max=20"`
	Homepage      string `json:"homepage" validate:"omitempty,min=5,max=50"`
	Description   string `json:"description" validate:"omitempty,min=5,max=150"`
	PostalCode    string `json:"postalCode" validate:"omitempty,min=5,max=20"`
	Logo          string `json:"logo" validate:"omitempty,min=10,max=1000"`
	IBAN          string `json:"iban" validate:"omitempty,min=10,max=34"`
	BIC           string `json:"bic" validate:"omitempty,min=5,max=30"`
	StripeAccount string `json:"stripeAccount" validate:"omitempty,min=5,max=30"`
}

// Build copies the allow-listed fields. The password is left for the caller
// to hash.
func (p OrganizationPayload) Build() Organization {
	return Organization{
		Email:         p.Email,
		Name:          p.Name,
		Address:       p.Address,
		City:          p.City,
		Homepage:      p.Homepage,
		Description:   p.Description,
		PostalCode:    p.PostalCode,
		Logo:          p.Logo,
		IBAN:          p.IBAN,
		BIC:           p.BIC,
		StripeAccount: p.StripeAccount,
	}
}
