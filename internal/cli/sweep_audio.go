package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/audit"
	"github.com/mrlokans/decypher/internal/config"
	"github.com/mrlokans/decypher/internal/database"
	auditrepo "github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/speech"
	"github.com/mrlokans/decypher/internal/storage/providers/local"
)

// SweepAudioCommand removes stored audio that no translation references.
type SweepAudioCommand struct {
	DatabasePath  string
	AssetsDir     string
	PublicBaseURL string
	Grace         time.Duration
	Verbose       bool

	Out io.Writer
	Log logrus.FieldLogger
}

func NewSweepAudioCommand() *SweepAudioCommand {
	return &SweepAudioCommand{Out: os.Stdout}
}

func (cmd *SweepAudioCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("sweep-audio", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the database file")
	fs.StringVar(&cmd.AssetsDir, "assets", cfg.Speech.AssetsDir, "Directory holding synthesized audio")
	fs.StringVar(&cmd.PublicBaseURL, "public-base-url", cfg.Speech.PublicBaseURL, "Prefix of stored audio asset refs")
	fs.DurationVar(&cmd.Grace, "grace", cfg.Maintenance.AudioSweepGrace, "Keep orphaned audio younger than this")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep-audio [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete stored audio files that no translation references.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SweepAudioCommand) Run() error {
	log := cmd.Log
	if log == nil {
		l := logrus.New()
		if cmd.Verbose {
			l.SetLevel(logrus.DebugLevel)
		}
		log = l
	}

	db, err := database.NewDatabase(cmd.DatabasePath, logger.Warn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	store, err := local.NewClient(cmd.AssetsDir)
	if err != nil {
		return fmt.Errorf("failed to open assets directory: %w", err)
	}

	// Only ref parsing is used, so no collaborator URL is needed.
	synthesizer := speech.NewHTTPSynthesizer("", 0, 0, store, cmd.PublicBaseURL)
	sweeper := speech.NewSweeper(store, synthesizer, translations.NewRepository(db.DB), cmd.Grace, log)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)
	defer auditService.Wait()

	removed, err := sweeper.Sweep(context.Background())
	auditService.LogAudioSweep(removed, err)
	if err != nil {
		return fmt.Errorf("sweep failed after removing %d files: %w", removed, err)
	}

	fmt.Fprintf(cmd.Out, "Removed %d orphaned audio files from %s\n", removed, store.Root())
	return nil
}
