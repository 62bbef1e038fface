package models

type City struct {
	ID           int    `gorm:"primaryKey;autoIncrement:false" bson:"id" json:"id"`
	Name         string `gorm:"size:50;not null;index" bson:"name" json:"name" validate:"required,min=3,max=50"`
	Municipality string `gorm:"size:50;not null" bson:"municipality" json:"municipality" validate:"required,min=3,max=50"`
}
