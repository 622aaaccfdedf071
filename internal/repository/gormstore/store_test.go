package gormstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/repository"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%iphone%", containsPattern("iPhone"))
	assert.Equal(t, `%100\%\_off%`, containsPattern("100%_OFF"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), repository.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), repository.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestProducts_SearchRejectsNegativeOffset(t *testing.T) {
	repo := &productRepo{}
	_, _, err := repo.Search(context.Background(), repository.ProductQuery{Offset: -8, Limit: 8})
	assert.Error(t, err)
}
