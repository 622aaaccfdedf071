// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, matching what the storefront client sends.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base model with common fields. Ids are UUID strings assigned by the service
// layer so the same documents fit both the Mongo and the postgres backends.
type BaseModel struct {
	ID        string    `json:"_id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func NewID() string {
	return uuid.NewString()
}

// Init assigns a fresh id (when missing) and both timestamps.
func (b *BaseModel) Init(now time.Time) {
	if b.ID == "" {
		b.ID = NewID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *BaseModel) Touch(now time.Time) {
	b.UpdatedAt = now
}
