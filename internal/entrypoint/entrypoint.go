// Package entrypoint wires the application together and runs the HTTP server.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/config"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/authors"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/editions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/events"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/subscriptions"
	http_controllers "github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/http"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/notify"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/pdfstore"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/scheduler"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/services"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// syncNotifier delivers notifications inline when the task queue is disabled.
type syncNotifier struct {
	notifier *notify.Notifier
}

func (s syncNotifier) EnqueueNotification(articleID uint) error {
	return s.notifier.NotifyArticlePublished(articleID)
}

// Serve runs the HTTP server until an interrupt or termination signal.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background processing before the HTTP listener
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run builds every component from configuration and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	pdfs, err := pdfstore.NewStore(cfg.Storage.PDFDir)
	if err != nil {
		log.Fatalf("Failed to initialize PDF storage: %v", err)
	}

	eventsRepo := events.NewRepository(db.DB)
	editionsRepo := editions.NewRepository(db.DB)
	authorsRepo := authors.NewRepository(db.DB)
	articlesRepo := articles.NewRepository(db.DB)
	subscriptionsRepo := subscriptions.NewRepository(db.DB)

	var mailer notify.Mailer
	if cfg.SMTP.Addr != "" {
		mailer = notify.SMTPMailer{Addr: cfg.SMTP.Addr, From: cfg.SMTP.From}
	}
	notifier := notify.NewNotifier(articlesRepo, subscriptionsRepo, mailer)

	// Task queue for notifications and maintenance
	var taskClient *tasks.Client
	var cleanupScheduler *scheduler.CleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.DefaultConfig()
		if cfg.Tasks.Workers > 0 {
			taskCfg.Workers = cfg.Tasks.Workers
		}
		if cfg.Tasks.ReleaseAfter > 0 {
			taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
		}
		if cfg.Tasks.CleanupInterval > 0 {
			taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer taskClient.Close()

		taskClient.Register(
			tasks.NewNotifySubscribersQueue(notifier),
			tasks.NewCleanupOrphanAuthorsQueue(authorsRepo),
		)

		taskCtx, taskCancel := context.WithCancel(context.Background())
		defer taskCancel()
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewCleanupScheduler(taskClient, cfg.Cleanup.Schedule)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start cleanup scheduler: %v", err)
		}
	} else {
		log.Println("Task queue disabled; notifying subscribers synchronously")
	}

	// Without a task queue, notifications run inline on article creation.
	var enqueuer services.TaskEnqueuer = syncNotifier{notifier}
	if taskClient != nil {
		enqueuer = taskClient
	}
	articleService := services.NewArticleService(articlesRepo, pdfs, enqueuer)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Events:         eventsRepo,
		Editions:       editionsRepo,
		Authors:        authorsRepo,
		Articles:       articlesRepo,
		Subscriptions:  subscriptionsRepo,
		ArticleService: articleService,
		PDFStore:       pdfs,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	})
}
