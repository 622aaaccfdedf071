// internal/models/category.go
package models

type Category struct {
	BaseModel `bson:",inline"`
	Name      string `json:"name" bson:"name" gorm:"uniqueIndex;size:100;not null"`
}
