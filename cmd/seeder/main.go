// cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/database/seeds"
	"github.com/javajoker/storefront/internal/utils"
)

func main() {
	destroy := flag.BoolP("destroy", "d", false, "delete all users, categories, products and orders")
	file := flag.StringP("file", "f", "", "catalog YAML to import instead of the built-in one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	utils.SetupLogger(cfg.Log)

	if err := run(cfg, *destroy, *file); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, destroy bool, file string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close(context.Background())

	if destroy {
		if err := seeds.Destroy(ctx, store); err != nil {
			return err
		}
		logrus.Info("Data destroyed")
		return nil
	}

	catalog, err := loadCatalog(file)
	if err != nil {
		return err
	}
	if err := seeds.Import(ctx, store, catalog); err != nil {
		return err
	}
	logrus.Info("Data imported")
	return nil
}

func loadCatalog(file string) (*seeds.Catalog, error) {
	if file == "" {
		return seeds.Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return seeds.Parse(data)
}
