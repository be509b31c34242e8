package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/bonsai"
	"bonsai-backend/internal/reports"
	"bonsai-backend/internal/services/health"
	"bonsai-backend/internal/shared/config"
	"bonsai-backend/internal/shared/server"
	"bonsai-backend/internal/shared/storage/db"
	"bonsai-backend/internal/shared/storage/docstore"
	filestore "bonsai-backend/internal/shared/storage/docstore/file"
	mongostore "bonsai-backend/internal/shared/storage/docstore/mongo"
	pgstore "bonsai-backend/internal/shared/storage/docstore/postgres"
	"bonsai-backend/internal/shared/storage/object"
	localstore "bonsai-backend/internal/shared/storage/object/local"
	s3store "bonsai-backend/internal/shared/storage/object/s3"
	"bonsai-backend/internal/uploads"
	"bonsai-backend/internal/workrecords"
	"bonsai-backend/internal/workschedules"
)

// Collection names in the document store.
const (
	colBonsai        = "bonsai"
	colWorkRecords   = "work_records"
	colWorkSchedules = "work_schedules"
	colReports       = "monthly_reports"
)

// App holds the wired application graph.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Docs   docstore.Provider
	Store  object.ObjectStore

	BonsaiService    *bonsai.Service
	RecordsService   *workrecords.Service
	SchedulesService *workschedules.Service
	ReportsService   *reports.Service
}

// Build prepares dependencies and wires the router. Construction is explicit
// and top-down so the dependency graph stays readable.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	docs, sqlDB, err := buildDocStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bonsaiRepo := bonsai.NewRepo(docs.Collection(colBonsai))
	recordsRepo := workrecords.NewRepo(docs.Collection(colWorkRecords))
	schedulesRepo := workschedules.NewRepo(docs.Collection(colWorkSchedules))
	reportStore := reports.NewStore(docs.Collection(colReports))

	bonsaiSvc := bonsai.NewService(bonsaiRepo)
	recordsSvc := workrecords.NewService(recordsRepo, bonsaiRepo)
	schedulesSvc := workschedules.NewService(schedulesRepo, bonsaiRepo)
	reportsSvc := reports.NewService(reportStore, bonsaiRepo, recordsRepo)

	uploadsHandler, err := buildUploads(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Docs:             docs,
		Store:            store,
		BonsaiService:    bonsaiSvc,
		RecordsService:   recordsSvc,
		SchedulesService: schedulesSvc,
		ReportsService:   reportsSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Health:    health.NewService(),
		Bonsai:    bonsai.NewHandler(bonsaiSvc),
		Records:   workrecords.NewHandler(recordsSvc),
		Schedules: workschedules.NewHandler(schedulesSvc),
		Reports:   reports.NewHandler(reportsSvc),
		Uploads:   uploadsHandler,
	})

	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDocStore(ctx context.Context, cfg config.Config) (docstore.Provider, *sql.DB, error) {
	switch cfg.DocStoreType {
	case "mongo":
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return nil, nil, fmt.Errorf("DOC_STORE=mongo requires MONGO_URI")
		}
		store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		return store, nil, nil
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, fmt.Errorf("DOC_STORE=postgres requires DATABASE_URL")
		}
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return pgstore.New(sqlDB), sqlDB, nil
	default:
		log.Printf("bootstrap: using file document store in %s", cfg.DataDir)
		return filestore.New(cfg.DataDir), nil, nil
	}
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildUploads(ctx context.Context, cfg config.Config, store object.ObjectStore) (*uploads.Handler, error) {
	if cfg.ObjectStoreType == "s3" && strings.TrimSpace(cfg.S3Bucket) != "" {
		return uploads.NewS3Handler(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, store)
	}
	return uploads.NewHandler(store), nil
}
