package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"pharmacy/pkg/api"
	"pharmacy/pkg/config"
	"pharmacy/pkg/migrations"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/pricing"
	"pharmacy/pkg/repository"
	"pharmacy/pkg/service"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func RunPharmacy(ctx context.Context, config *config.APIServer) error {
	logger := getLogger("PharmacyApp")
	defer syncLogger(logger)

	logger.Sugar().Infof("start PharmacyApp")

	if err := migrate(logger, config.Storage); err != nil {
		return err
	}

	logger.Sugar().Infof("init repos for storage=%s", config.Storage.Type)
	productsRepo, err := repository.NewProducts(config.Storage)
	if err != nil {
		logger.Sugar().Errorf("unable to init products repo for storage=%s: (%s)", config.Storage.Type, err.Error())
		return err
	}
	ordersRepo, err := repository.NewOrders(config.Storage)
	if err != nil {
		logger.Sugar().Errorf("unable to init orders repo for storage=%s: (%s)", config.Storage.Type, err.Error())
		return err
	}

	reader := pricelist.NewReader(logger, &http.Client{Timeout: config.Catalog.FetchTimeout})
	formatter := pricing.NewFormatter(config.Pricing.CurrencySymbol)

	catalog := service.NewCatalog(logger, productsRepo, ordersRepo, reader, config.Pricing)
	carts := service.NewCarts(logger, productsRepo)
	orders := service.NewOrders(logger, ordersRepo, carts, config.Remitos, formatter)

	loadCatalog(ctx, logger, reader, catalog, config.Catalog)

	restAPI, err := api.NewAPI(config, logger, catalog, carts, orders)
	if err != nil {
		return err
	}

	r := gin.New()

	r.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	restAPI.RegisterHandlers(r)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Port),
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Sugar().Infof("start listening on port=%d", config.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("can't start api server at port=%d: %w", config.Port, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Sugar().Infof("stopping PharmacyApp")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Sugar().Errorf("PharmacyApp failed: (%s)", err.Error())
		return err
	}

	logger.Sugar().Infof("PharmacyApp stopped. Bye!")

	return nil
}

func migrate(logger *zap.Logger, storage config.Storage) error {
	if storage.Type != repository.StorageMySQL {
		return nil
	}
	logger.Sugar().Info("run migrations")
	if err := migrations.MigrateDB(storage.DSN); err != nil {
		logger.Sugar().Errorf("unable to run migrations: (%s)", err.Error())
		return err
	}
	return nil
}

// loadCatalog imports the configured catalog source. Failures are logged and
// the catalog keeps what the storage already holds.
func loadCatalog(ctx context.Context, logger *zap.Logger, reader *pricelist.Reader, catalog service.Catalog, cfg config.Catalog) {
	var (
		source string
		res    *pricelist.Result
		err    error
	)
	switch {
	case cfg.SourceURL != "":
		source = cfg.SourceURL
		res, err = reader.Fetch(ctx, cfg.SourceURL)
	case cfg.SourcePath != "":
		source = cfg.SourcePath
		res, err = readCatalogFile(reader, cfg.SourcePath)
	default:
		logger.Sugar().Info("no catalog source configured")
		return
	}
	if err != nil {
		logger.Sugar().Errorf("can't load catalog from source=%s: (%s)", source, err.Error())
		return
	}

	if err = catalog.ImportProducts(ctx, res.Products); err != nil {
		logger.Sugar().Errorf("can't store catalog from source=%s: (%s)", source, err.Error())
		return
	}
	logger.Sugar().Infof("loaded catalog from source=%s, products=%d skipped=%d", source, len(res.Products), res.Skipped)
}

func readCatalogFile(reader *pricelist.Reader, path string) (*pricelist.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reader.Read(f, path)
}
