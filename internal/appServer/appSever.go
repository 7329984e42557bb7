// launching the server, dataset, default image, kafka
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/insight-analyzer/config"
	"github.com/ds124wfegd/insight-analyzer/internal/database"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/kafka"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/processor"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/render"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/storage"
	"github.com/ds124wfegd/insight-analyzer/internal/service"
	"github.com/ds124wfegd/insight-analyzer/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

// NewHTTPServer prepares the listener configuration; nothing is bound until Run.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// SetupLogging applies the configured level; unknown levels fall back to info.
func SetupLogging(cfg config.LogConfig) {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewProducer picks the Kafka producer when events are enabled.
func NewProducer(cfg config.KafkaConfig) kafka.Producer {
	if !cfg.Enabled {
		return kafka.NewLogProducer()
	}
	return kafka.NewProducer(cfg.Brokers, cfg.Topic)
}

// NewHandler builds the whole dependency graph. Load failures only disable
// the affected panel.
func NewHandler(cfg *config.Config, producer kafka.Producer) http.Handler {
	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath)

	passengerRepo := database.NewPassengerRepository(fileStorage)
	loadInput(fileStorage, cfg.Dataset.Path, passengerRepo.Load, "Dataset panel disabled")

	assetRepo := database.NewAssetRepository(fileStorage)
	loadInput(fileStorage, cfg.Gallery.DefaultImage, assetRepo.Load, "Default image unavailable, gallery accepts uploads only")

	publisher := service.NewEventPublisher(producer, cfg.Kafka.PublishTimeout)

	datasetService := service.NewDatasetService(
		passengerRepo,
		render.NewRenderer(cfg.Charts.Width, cfg.Charts.Height),
		publisher,
		service.DatasetSettings{
			DefaultAgeMin: cfg.Dataset.DefaultAgeMin,
			DefaultAgeMax: cfg.Dataset.DefaultAgeMax,
			PreviewRows:   cfg.Dataset.PreviewRows,
		},
	)
	galleryService := service.NewGalleryService(
		assetRepo,
		processor.NewImageProcessorWithSize(cfg.Gallery.ResizeWidth, cfg.Gallery.ResizeHeight),
		publisher,
	)

	return transport.InitRoutes(
		transport.NewDatasetHandler(datasetService),
		transport.NewGalleryHandler(galleryService, cfg.Gallery.MaxUploadMB),
		transport.RouterConfig{
			TemplatesDir:   cfg.Server.TemplatesDir,
			RequestTimeout: cfg.Server.Timeout,
		},
	)
}

// loadInput reports a missing file separately from one that fails to load.
// Either way the repository stays unavailable.
func loadInput(fs storage.FileStorage, path string, load func(string) error, disabled string) bool {
	entry := logrus.WithField("path", fs.Resolve(path))
	if !fs.Exists(path) {
		entry.WithField("error", "file not found").Error(disabled)
		return false
	}
	if err := load(path); err != nil {
		entry.WithField("error", err).Error(disabled)
		return false
	}
	return true
}

func NewServer(cfg *config.Config) {

	SetupLogging(cfg.Log)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	producer := NewProducer(cfg.Kafka)
	defer producer.Close()

	srv := NewHTTPServer(cfg, NewHandler(cfg, producer))
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port": cfg.Server.Port,
		"env":  cfg.Server.Env,
	}).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}
