package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/audit"
	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/config"
	"github.com/mrlokans/decypher/internal/database"
	auditrepo "github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/database/practice"
	"github.com/mrlokans/decypher/internal/database/readingsessions"
	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/database/users"
	http_controllers "github.com/mrlokans/decypher/internal/http"
	"github.com/mrlokans/decypher/internal/lexical"
	"github.com/mrlokans/decypher/internal/logging"
	"github.com/mrlokans/decypher/internal/retry"
	"github.com/mrlokans/decypher/internal/scheduler"
	"github.com/mrlokans/decypher/internal/services"
	"github.com/mrlokans/decypher/internal/speech"
	"github.com/mrlokans/decypher/internal/storage/providers/local"
	"github.com/mrlokans/decypher/internal/tasks"
	"github.com/mrlokans/decypher/internal/translate"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger logrus.FieldLogger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("starting server")
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.WithField("timeout", timeout).Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}

	// Stop background work after the last request has finished
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	logger.WithField("version", version).Info("starting decypher")

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path, logging.GormLevel(logger.GetLevel()))
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("error closing database")
		}
	}()

	userRepo := users.NewRepository(db.DB)
	readingSessionRepo := readingsessions.NewRepository(db.DB)
	translationRepo := translations.NewRepository(db.DB)
	practiceRepo := practice.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), logger)
	defer auditService.Wait()

	// Collaborators
	mediaStore, err := local.NewClient(cfg.Speech.AssetsDir)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize media storage")
	}
	translator := translate.NewHTTPClient(cfg.Translator.URL, cfg.Translator.Timeout, cfg.Translator.RateLimit)
	synthesizer := speech.NewHTTPSynthesizer(cfg.Speech.URL, cfg.Speech.Timeout, cfg.Speech.RateLimit, mediaStore, cfg.Speech.PublicBaseURL)
	sweeper := speech.NewSweeper(mediaStore, synthesizer, translationRepo, cfg.Maintenance.AudioSweepGrace, logger.WithField("component", "audio_sweeper"))

	tagger, model := newTagger(cfg.Tagger, logger)
	analyzer := lexical.NewAnalyzer(tagger, retry.NewPolicy(cfg.Retry, cfg.Tagger.Timeout), logger)

	// Initialize task queue if enabled
	var assetDeleter speech.AssetDeleter = synthesizer
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromSettings(cfg.Tasks), logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.WithError(err).Error("error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewDeleteAudioAssetQueue(synthesizer, logger),
			tasks.NewSweepOrphanAudioQueue(sweeper, auditService),
			tasks.NewCleanupAuditEventsQueue(auditService, logger),
		)
		assetDeleter = tasks.NewAsyncAssetDeleter(taskClient)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.Maintenance.Enabled {
			maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Maintenance, cfg.Audit.RetentionDays, logger)
			if err := maintenance.Start(taskCtx); err != nil {
				logger.WithError(err).Error("maintenance scheduler not started")
				maintenance = nil
			}
		}
	} else {
		logger.Info("task queue disabled, audio deletes run inline and maintenance is off")
	}

	authService := auth.NewService(userRepo)

	routerCfg := http_controllers.RouterConfig{
		Assembler: services.NewTranslationAssembler(
			translationRepo,
			readingSessionRepo,
			translator,
			synthesizer,
			retry.NewPolicy(cfg.Retry, cfg.Translator.Timeout),
			retry.NewPolicy(cfg.Retry, cfg.Speech.Timeout),
			cfg.Translator.MaxSourceLength,
			logger.WithField("component", "assembler"),
		),
		Ledger:          services.NewTranslationLedger(translationRepo, assetDeleter, auditService, cfg.Ledger.PageSize, logger.WithField("component", "ledger")),
		Renderer:        services.NewTranslationRenderer(analyzer),
		Practice:        services.NewPracticeEngine(translationRepo, practiceRepo, auditService, cfg.Practice.SampleSize, cfg.Practice.PassThreshold, cfg.Practice.MaxGuessLength, logger.WithField("component", "practice")),
		ReadingSessions: readingSessionRepo,
		Dashboard:       services.NewDashboard(translationRepo, readingSessionRepo, practiceRepo),
		AuditEvents:     auditService,
		AuthMiddleware:  auth.NewMiddleware(authService, logger),
		Database:        db,
		MediaDir:        mediaStore.Root(),
		Version:         version,
		Log:             logger,
	}
	if model != nil {
		routerCfg.TaggerModel = model
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if model != nil {
			if err := model.Close(); err != nil {
				logger.WithError(err).Error("error releasing tagger model")
			}
		}
	}

	Serve(router, cfg, logger, onShutdown)
}

// newTagger routes Japanese to the in-process model and everything else to
// the remote tagger. The returned handle is nil when the model is disabled.
func newTagger(cfg config.Tagger, logger logrus.FieldLogger) (lexical.Tagger, *lexical.ModelHandle) {
	var fallback lexical.Tagger
	if cfg.URL != "" {
		fallback = lexical.NewHTTPTagger(cfg.URL, cfg.Timeout)
	} else {
		logger.Info("no remote tagger configured, analysis is limited to in-process languages")
	}

	router := lexical.NewRouter(fallback)
	if !cfg.JapaneseEnabled {
		return router, nil
	}
	model := lexical.NewModelHandle()
	router.Handle("ja", lexical.NewKagomeTagger(model))
	return router, model
}
