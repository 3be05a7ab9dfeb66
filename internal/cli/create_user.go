package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/config"
	"github.com/mrlokans/decypher/internal/database"
	"github.com/mrlokans/decypher/internal/database/users"
)

// CreateUserCommand provisions a learner and prints their API token.
type CreateUserCommand struct {
	Username      string
	Email         string
	FirstLanguage string
	Learning      string
	DatabasePath  string

	Out io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{Out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username, 3-64 characters (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.FirstLanguage, "first-language", "en", "Short code of the language translations are made into")
	fs.StringVar(&cmd.Learning, "learning", "pt", "Short code of the language being learned")
	fs.StringVar(&cmd.DatabasePath, "db", config.NewConfig().Database.Path, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -email <email> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a learner account and print its API token.\n")
		fmt.Fprintf(os.Stderr, "The token is shown once; only its hash is stored.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username ana -email ana@example.com -first-language en -learning pt\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, logger.Warn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	first, err := db.GetLanguageByShortCode(cmd.FirstLanguage)
	if err != nil {
		return fmt.Errorf("first language: %w", err)
	}
	learning, err := db.GetLanguageByShortCode(cmd.Learning)
	if err != nil {
		return fmt.Errorf("learning language: %w", err)
	}

	service := auth.NewService(users.NewRepository(db.DB))
	user, token, err := service.CreateUser(cmd.Username, cmd.Email, first.ID, learning.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Created user %q (id %d), learning %s from %s\n", user.Username, user.ID, learning.Name, first.Name)
	fmt.Fprintf(cmd.Out, "API token: %s\n", token)
	fmt.Fprintf(cmd.Out, "Send it as \"Authorization: Token %s\"\n", token)
	return nil
}
