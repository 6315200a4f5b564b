package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mandic19/Shop/internal/config"
	"github.com/mandic19/Shop/internal/logging"
	"github.com/mandic19/Shop/internal/repositories"
	"github.com/mandic19/Shop/internal/seeding"
	"github.com/mandic19/Shop/pkg/database"
)

func main() {
	defaults := seeding.DefaultConfig()
	seedCfg := seeding.Config{}
	flag.IntVar(&seedCfg.Products, "products", defaults.Products, "number of products to create")
	flag.IntVar(&seedCfg.VariantsPerProduct, "variants", defaults.VariantsPerProduct, "variants per product (max 2000)")
	flag.IntVar(&seedCfg.ProductImagesPerProduct, "product-images", defaults.ProductImagesPerProduct, "images per product (0 or 1)")
	flag.IntVar(&seedCfg.ImagesPerVariant, "variant-images", defaults.ImagesPerVariant, "images per variant (max 20)")
	flag.Uint64Var(&seedCfg.Seed, "seed", 0, "seed for reproducible data (0 = random)")
	flag.Parse()

	if err := run(seedCfg); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(seedCfg seeding.Config) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := logging.IntoContext(context.Background(), logger)
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.ClosePool(pool)

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	_, err = seeding.NewShopSeeder(repositories.NewUnitOfWork(pool), seedCfg).Run(ctx)
	return err
}
