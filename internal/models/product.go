// internal/models/product.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Review belongs to exactly one product and is never edited after creation.
type Review struct {
	ID        string    `json:"_id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	ProductID string    `json:"-" bson:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_product_user"`
	UserID    string    `json:"user" bson:"user" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_product_user"`
	Name      string    `json:"name" bson:"name" gorm:"size:100;not null"`
	Rating    int       `json:"rating" bson:"rating" gorm:"not null"`
	Comment   string    `json:"comment" bson:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	BaseModel    `bson:",inline"`
	UserID       string          `json:"user" bson:"user" gorm:"type:varchar(36);index"`
	Name         string          `json:"name" bson:"name" gorm:"size:255;not null"`
	Image        string          `json:"image" bson:"image" gorm:"size:512"`
	Brand        string          `json:"brand" bson:"brand" gorm:"size:100"`
	CategoryID   string          `json:"category" bson:"category" gorm:"column:category_id;type:varchar(36);index"`
	Description  string          `json:"description" bson:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" bson:"price" gorm:"type:decimal(12,2);not null;default:0"`
	CountInStock int             `json:"countInStock" bson:"countInStock" gorm:"not null;default:0"`
	Rating       float64         `json:"rating" bson:"rating" gorm:"not null;default:0"`
	NumReviews   int             `json:"numReviews" bson:"numReviews" gorm:"not null;default:0"`
	Reviews      []Review        `json:"reviews" bson:"reviews" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) HasReviewFrom(userID string) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview appends r and keeps rating and numReviews in step with the list.
func (p *Product) AddReview(r Review) {
	p.Reviews = append(p.Reviews, r)
	p.RecomputeRating()
}

func (p *Product) RecomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}
