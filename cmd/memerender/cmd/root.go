package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"memerender/internal/config"
	"memerender/internal/database"
	"memerender/internal/logging"
	"memerender/internal/services"
)

var (
	verbose bool
	cfgFile string
	dbPath  string
	logger  *log.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "memerender",
	Short: "Generate crypto-themed images from text prompts",
	Long: `memerender drives the Meme Render services from the terminal.
It shares the database, keyring entry and configuration with the desktop app.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Options{ConfigFile: cfgFile})
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger = logging.Configure(os.Stderr, level)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeEnv()
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle().Render("Error: "+err.Error()))
		_ = closeEnv()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default <user config dir>/memerender/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")
}

// env holds lazily opened resources shared by subcommands.
type env struct {
	db   *gorm.DB
	dbs  *services.DbServices
	keys *services.KeyringService
}

var current *env

var openKeyring = services.OpenKeyring

func openEnv() (*env, error) {
	if current != nil {
		return current, nil
	}
	db, err := database.Init(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, err
	}
	current = &env{db: db, dbs: services.NewDbServices(db)}
	return current, nil
}

func (e *env) keyring() (*services.KeyringService, error) {
	if e.keys != nil {
		return e.keys, nil
	}
	k, err := openKeyring(cfg.AppID)
	if err != nil {
		return nil, err
	}
	e.keys = k
	return k, nil
}

// auth restores the desktop session from the database and keyring.
func (e *env) auth(ctx context.Context) (services.AuthService, error) {
	keys, err := e.keyring()
	if err != nil {
		return nil, err
	}
	a := services.NewAuthService(e.dbs.Users, e.dbs.Preferences, keys, cfg.ServiceURL)
	a.Startup(ctx)
	return a, nil
}

func closeEnv() error {
	if current == nil {
		return nil
	}
	err := database.Close(current.db)
	current = nil
	return err
}
