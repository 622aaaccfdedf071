package mongostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/javajoker/storefront/internal/repository"
)

func TestProductFilter(t *testing.T) {
	assert.Equal(t, bson.D{}, productFilter(repository.ProductQuery{}))

	filter := productFilter(repository.ProductQuery{Keyword: "c++ (new)", CategoryID: "cat-1"})
	assert.Equal(t, bson.D{
		{Key: "name", Value: bson.D{
			{Key: "$regex", Value: `c\+\+ \(new\)`},
			{Key: "$options", Value: "i"},
		}},
		{Key: "category", Value: "cat-1"},
	}, filter)
}

func TestProducts_SearchRejectsNegativeOffset(t *testing.T) {
	repo := &productRepo{}
	_, _, err := repo.Search(context.Background(), repository.ProductQuery{Offset: -8, Limit: 8})
	assert.Error(t, err)
}
