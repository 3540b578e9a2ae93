package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diyhub/backend/api"
	"github.com/diyhub/backend/config"
	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/events"
	"github.com/diyhub/backend/models"
	"github.com/diyhub/backend/services"
	"github.com/diyhub/backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(config.New())
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx := context.Background()
	if cfg.NeedsSSM() {
		client, err := config.NewSSMClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating SSM client")
		}
		if err := config.ResolveJWTSecret(ctx, &cfg, client); err != nil {
			log.Fatal().Err(err).Msg("Error resolving JWT secret")
		}
	}

	log.Info().Str("dbType", cfg.Database.Type).Msg("Connecting to database...")
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	// If generating models, write query helpers, print the column report and exit
	if cfg.GenerateModels {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db, "./generated")

		report, err := models.ColumnMismatches(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building column report")
		}
		fmt.Print(models.FormatColumnReport(report))
		return
	}

	images, uploadDir, err := newImageStore(ctx, cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring image storage")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, currentDB, api.Dependencies{
		Images:    images,
		UploadDir: uploadDir,
		Hub:       events.NewHub(),
		Meet:      services.NewMeetScheduler(""),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogging applies LOG_LEVEL and switches to the console writer when LOG_PRETTY is set.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// newImageStore returns the configured store and the directory to serve at /uploads, which is
// empty for S3.
func newImageStore(ctx context.Context, cfg config.UploadConfig) (storage.ImageStore, string, error) {
	switch cfg.Backend {
	case config.UploadBackendS3:
		store, err := storage.NewS3StoreFromEnv(ctx, cfg.Bucket, cfg.PublicBaseURL)
		return store, "", err
	default:
		store, err := storage.NewDiskStore(cfg.Dir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
