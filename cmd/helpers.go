package cmd

import (
	"list-scanner/core/config"
	"list-scanner/core/database"
	"list-scanner/core/logger"
	"list-scanner/core/storage"
	"list-scanner/feature/scansession"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appContext bundles everything a command needs after startup.
type appContext struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *scansession.Service
}

// setup loads configuration, builds the logger, opens the scan database,
// migrates the schema, and wires the scanning service.
func setup() (*appContext, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	store := scansession.NewStore(db, logg)
	if err := store.Migrate(); err != nil {
		return nil, err
	}

	// The storage client connects lazily, so building it up front costs
	// nothing when report uploads are never used.
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Object storage client unavailable, report uploads disabled", zap.Error(err))
		client = nil
	}

	service := scansession.NewService(store, client, cfg.Storage.Bucket, cfg.Report.Prefix, logg)
	return &appContext{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		service: service,
	}, nil
}
