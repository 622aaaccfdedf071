// internal/database/seeds/seeds.go
package seeds

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Users      []SeedUser    `yaml:"users"`
	Categories []string      `yaml:"categories"`
	Products   []SeedProduct `yaml:"products"`
}

type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"isAdmin"`
}

type SeedProduct struct {
	Name         string          `yaml:"name"`
	Image        string          `yaml:"image"`
	Description  string          `yaml:"description"`
	Brand        string          `yaml:"brand"`
	Category     string          `yaml:"category"`
	Price        decimal.Decimal `yaml:"price"`
	CountInStock int             `yaml:"countInStock"`
	Reviews      []SeedReview    `yaml:"reviews"`
}

// SeedReview names its author by email.
type SeedReview struct {
	User    string `yaml:"user"`
	Rating  int    `yaml:"rating"`
	Comment string `yaml:"comment"`
}

func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Users) == 0 {
		return nil, fmt.Errorf("catalog needs at least one user")
	}
	return &c, nil
}

// Destroy removes every order, product, user and category.
func Destroy(ctx context.Context, store *repository.Store) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"orders", store.Orders.DeleteAll},
		{"products", store.Products.DeleteAll},
		{"users", store.Users.DeleteAll},
		{"categories", store.Categories.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", step.name, err)
		}
	}
	return nil
}

// Import wipes the store and loads c. The first user owns every product.
// Every product category and review author must be declared in c, otherwise
// nothing past the wipe is written.
func Import(ctx context.Context, store *repository.Store, c *Catalog) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := Destroy(ctx, store); err != nil {
		return err
	}

	now := time.Now().UTC()
	userIDs := make(map[string]*models.User, len(c.Users))
	for _, su := range c.Users {
		u := &models.User{Name: su.Name, Email: models.NormalizeEmail(su.Email), IsAdmin: su.IsAdmin}
		if err := u.SetPassword(su.Password); err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}
		u.Init(now)
		if err := store.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.Email, err)
		}
		userIDs[u.Email] = u
	}
	owner := userIDs[models.NormalizeEmail(c.Users[0].Email)]

	categoryIDs := make(map[string]string, len(c.Categories))
	for _, name := range c.Categories {
		cat := &models.Category{Name: name}
		cat.Init(now)
		if err := store.Categories.Create(ctx, cat); err != nil {
			return fmt.Errorf("failed to create category %s: %w", name, err)
		}
		categoryIDs[name] = cat.ID
	}

	for i, sp := range c.Products {
		p := &models.Product{
			UserID:       owner.ID,
			Name:         sp.Name,
			Image:        sp.Image,
			Brand:        sp.Brand,
			CategoryID:   categoryIDs[sp.Category],
			Description:  sp.Description,
			Price:        sp.Price,
			CountInStock: sp.CountInStock,
		}
		// Spread creation times so catalogue pages keep the file order.
		created := now.Add(time.Duration(i) * time.Millisecond)
		p.Init(created)
		for _, sr := range sp.Reviews {
			author := userIDs[models.NormalizeEmail(sr.User)]
			p.AddReview(models.Review{
				ID:        models.NewID(),
				ProductID: p.ID,
				UserID:    author.ID,
				Name:      author.Name,
				Rating:    sr.Rating,
				Comment:   sr.Comment,
				CreatedAt: created,
			})
		}
		if err := store.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create product %s: %w", sp.Name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":      len(c.Users),
		"categories": len(c.Categories),
		"products":   len(c.Products),
	}).Info("Data imported")
	return nil
}

func (c *Catalog) check() error {
	categories := make(map[string]bool, len(c.Categories))
	for _, name := range c.Categories {
		categories[name] = true
	}
	users := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		users[models.NormalizeEmail(u.Email)] = true
	}

	for _, p := range c.Products {
		if !categories[p.Category] {
			return fmt.Errorf("product %q references unknown category %q", p.Name, p.Category)
		}
		if p.Price.IsNegative() || p.CountInStock < 0 {
			return fmt.Errorf("product %q has a negative price or stock", p.Name)
		}
		reviewed := make(map[string]bool)
		for _, r := range p.Reviews {
			email := models.NormalizeEmail(r.User)
			if !users[email] {
				return fmt.Errorf("product %q has a review by unknown user %q", p.Name, r.User)
			}
			if reviewed[email] {
				return fmt.Errorf("product %q has two reviews by %q", p.Name, r.User)
			}
			if r.Rating < 1 || r.Rating > 5 {
				return fmt.Errorf("product %q has a review rated %d", p.Name, r.Rating)
			}
			reviewed[email] = true
		}
	}
	return nil
}
