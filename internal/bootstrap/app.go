package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/analyses"
	"hvac-ats-backend/internal/analyzer"
	"hvac-ats-backend/internal/applications"
	googleauth "hvac-ats-backend/internal/auth"
	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/communications"
	"hvac-ats-backend/internal/export"
	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/llm"
	"hvac-ats-backend/internal/llm/anthropic"
	"hvac-ats-backend/internal/llm/gemini"
	"hvac-ats-backend/internal/llm/openai"
	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/queue"
	"hvac-ats-backend/internal/services/health"
	"hvac-ats-backend/internal/shared/config"
	"hvac-ats-backend/internal/shared/server"
	"hvac-ats-backend/internal/shared/storage/db"
	"hvac-ats-backend/internal/shared/storage/object"
	localstore "hvac-ats-backend/internal/shared/storage/object/local"
	s3store "hvac-ats-backend/internal/shared/storage/object/s3"
	"hvac-ats-backend/internal/shared/telemetry"
	"hvac-ats-backend/internal/users"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *db.Handle
	Store  object.Store
	// Queue is nil unless ATS_SQS_QUEUE_URL is set.
	Queue queue.Client
	LLM   llm.Client

	UsersService          *users.Service
	JobsService           *jobs.Service
	PipelineService       *pipeline.Service
	AnalysesService       *analyses.Service
	ApplicationsService   *applications.Service
	CommunicationsService *communications.Service
	GoogleAuth            *googleauth.GoogleService
}

// Build connects storage, picks the LLM provider and wires every handler.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	handle, err := OpenDB(ctx, cfg, db.DefaultServerOptions())
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}
	llmClient, err := NewLLMClient(ctx, cfg)
	if err != nil {
		if !cfg.IsDevLike() {
			return nil, err
		}
		log.Printf("bootstrap: %v; analyses will fail until a provider is configured", err)
		llmClient = unconfiguredLLM{err: err}
	}

	app := &App{Config: cfg, DB: handle, Store: store, Queue: queueClient, LLM: llmClient}
	app.wire()
	return app, nil
}

func (app *App) wire() {
	cfg := app.Config
	h := app.DB

	userSvc := users.NewService(&users.SQLRepo{DB: h})
	jobSvc := jobs.NewService(&jobs.SQLRepo{DB: h})
	pipelineSvc := pipeline.NewService(&pipeline.SQLRepo{DB: h})
	candidateRepo := &candidates.SQLRepo{DB: h}

	analysisSvc := &analyses.Service{
		DB:               h,
		Analyzer:         &analyzer.Analyzer{LLM: app.LLM, Store: app.Store},
		Store:            app.Store,
		Jobs:             jobSvc,
		Candidates:       candidateRepo,
		Analyses:         &analyses.SQLRepo{DB: h},
		BatchConcurrency: cfg.BatchConcurrency,
	}
	if app.Queue != nil {
		analysisSvc.Queue = app.Queue
	}
	applicationSvc := applications.NewService(jobSvc, analysisSvc)

	oauthCfg := googleauth.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	googleSvc := googleauth.NewGoogleService(oauthCfg, cfg.UIRedirectURL, userSvc)

	var sender communications.Sender = communications.LogSender{From: cfg.MailFrom}
	if googleSvc.Configured() {
		sender = &communications.GmailSender{OAuth: oauthCfg}
	}
	commsSvc := &communications.Service{
		Repo:       &communications.SQLRepo{DB: h},
		Pipeline:   pipelineSvc,
		Jobs:       jobSvc,
		Candidates: candidateRepo,
		Users:      userSvc,
		Sender:     sender,
	}

	app.UsersService = userSvc
	app.JobsService = jobSvc
	app.PipelineService = pipelineSvc
	app.AnalysesService = analysisSvc
	app.ApplicationsService = applicationSvc
	app.CommunicationsService = commsSvc
	app.GoogleAuth = googleSvc

	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Routes: []server.Routes{
			health.NewService(h),
			users.NewHandler(userSvc),
			googleSvc,
			jobs.NewHandler(jobSvc),
			analyses.NewHandler(analysisSvc),
			applications.NewHandler(applicationSvc),
			pipeline.NewHandler(pipelineSvc, jobSvc),
			export.NewHandler(jobSvc, pipelineSvc),
			communications.NewHandler(commsSvc),
		},
	})
}

// OpenDB connects the configured database with pool defaults base, which
// DB_* variables override for Postgres. SQLite files are migrated on open;
// Postgres is migrated by cmd/migrate except in dev.
func OpenDB(ctx context.Context, cfg config.Config, base db.Options) (*db.Handle, error) {
	dialect, err := db.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DatabaseURL
	opts := db.OptionsFromEnv(base)
	if dialect == db.DialectSQLite {
		dsn = cfg.SQLitePath
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		opts = db.DefaultSQLiteOptions()
	} else if dsn == "" {
		return nil, errors.New("DATABASE_URL is required for postgres")
	}

	conn, err := db.Connect(ctx, dialect, dsn, opts)
	if err != nil {
		return nil, err
	}
	if dialect == db.DialectSQLite || cfg.IsDevLike() {
		if err := db.RunMigrations(ctx, conn, dialect); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	telemetry.Info("bootstrap.database", map[string]any{"driver": string(dialect)})
	return db.NewHandle(conn, dialect), nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if cfg.SQSQueueURL == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.SQSQueueURL, cfg.AWSRegion)
}

// NewLLMClient builds the configured provider wrapped with retries.
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	var (
		base llm.Client
		err  error
	)
	switch cfg.LLMProvider {
	case "openai":
		base, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, timeout)
	case "gemini":
		base, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	case "anthropic":
		base, err = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel, timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}
	return llm.WithRetry(base), nil
}

type unconfiguredLLM struct{ err error }

func (u unconfiguredLLM) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	return llm.Response{}, fmt.Errorf("llm not configured: %w", u.err)
}
