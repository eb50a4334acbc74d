package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vhelp/assistflow/internal/api"
	"github.com/vhelp/assistflow/internal/catalog"
	"github.com/vhelp/assistflow/internal/flow"
	"github.com/vhelp/assistflow/internal/genai"
	"github.com/vhelp/assistflow/internal/lockfile"
	"github.com/vhelp/assistflow/internal/messaging"
	"github.com/vhelp/assistflow/internal/session"
	"github.com/vhelp/assistflow/internal/store"
	"github.com/vhelp/assistflow/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for AssistFlow state data
	DefaultStateDir = "/var/lib/assistflow"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "assistflow.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	// Serialize instances sharing the same state directory.
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to acquire state directory lock", "error", err)
		os.Exit(1)
	}
	defer lock.Release()

	archive, err := buildArchiveStore(flags)
	if err != nil {
		slog.Error("Failed to initialize booking archive", "error", err)
		os.Exit(1)
	}
	defer archive.Close()

	var fallback flow.FallbackClient
	if *flags.openaiKey != "" {
		client, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey))
		if err != nil {
			slog.Error("Failed to initialize GenAI fallback", "error", err)
			os.Exit(1)
		}
		fallback = client
	} else {
		slog.Warn("No OpenAI API key configured; generative fallback disabled")
	}

	var sender messaging.Sender
	if *flags.twilioSID != "" && *flags.twilioToken != "" {
		client, err := messaging.NewClient(
			messaging.WithAccountSID(*flags.twilioSID),
			messaging.WithAuthToken(*flags.twilioToken),
			messaging.WithFromWhats(*flags.twilioFrom),
		)
		if err != nil {
			slog.Error("Failed to initialize Twilio client", "error", err)
			os.Exit(1)
		}
		sender = client
	} else {
		slog.Warn("Twilio credentials not configured; outbound messaging and call bridging disabled")
	}

	sessions := session.NewManager(config.SessionTimeout)
	engine := flow.NewEngine(sessions, catalog.Default(), catalog.DefaultFAQs(), fallback, archive)
	if sender != nil {
		engine.SetAgentCaller(sender)
	}

	apiOpts := []api.Option{}
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	server := api.NewServer(engine, sender, archive, apiOpts...)

	slog.Info("Bootstrapping AssistFlow",
		"state_dir", *flags.stateDir,
		"db_driver", *flags.dbDriver,
		"dsn_set", *flags.dbDSN != "",
		"api_addr", *flags.apiAddr,
		"genai_enabled", fallback != nil,
		"twilio_enabled", sender != nil,
		"session_timeout", config.SessionTimeout)
	if err := server.Run(); err != nil {
		slog.Error("AssistFlow failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("AssistFlow exited successfully")
}

// Config holds environment configuration
type Config struct {
	DbDriver       string
	DatabaseURL    string
	StateDir       string
	OpenAIKey      string
	APIAddr        string
	TwilioSID      string
	TwilioToken    string
	TwilioFrom     string
	SessionTimeout time.Duration
}

// Flags holds command line flag values
type Flags struct {
	stateDir    *string
	dbDriver    *string
	dbDSN       *string
	openaiKey   *string
	apiAddr     *string
	twilioSID   *string
	twilioToken *string
	twilioFrom  *string
}

// initializeLogger sets up structured logging; DEBUG=true lowers the level
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DbDriver:       os.Getenv("ASSISTFLOW_DB_DRIVER"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StateDir:       os.Getenv("ASSISTFLOW_STATE_DIR"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		APIAddr:        os.Getenv("API_ADDR"),
		TwilioSID:      os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:     os.Getenv("TWILIO_FROM_NUMBER"),
		SessionTimeout: util.ParseDurationEnv("SESSION_TIMEOUT", session.DefaultTimeout),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No ASSISTFLOW_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory.
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"ASSISTFLOW_DB_DRIVER", config.DbDriver,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"ASSISTFLOW_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"TWILIO_ACCOUNT_SID_SET", config.TwilioSID != "",
		"API_ADDR", config.APIAddr,
		"SESSION_TIMEOUT", config.SessionTimeout)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:    flag.String("state-dir", config.StateDir, "state directory for AssistFlow data (overrides $ASSISTFLOW_STATE_DIR)"),
		dbDriver:    flag.String("db-driver", config.DbDriver, "booking archive driver: sqlite3, postgres, or memory (overrides $ASSISTFLOW_DB_DRIVER)"),
		dbDSN:       flag.String("db-dsn", config.DatabaseURL, "booking archive DSN (overrides $DATABASE_URL)"),
		openaiKey:   flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		apiAddr:     flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		twilioSID:   flag.String("twilio-account-sid", config.TwilioSID, "Twilio account SID (overrides $TWILIO_ACCOUNT_SID)"),
		twilioToken: flag.String("twilio-auth-token", config.TwilioToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFrom:  flag.String("twilio-from", config.TwilioFrom, "Twilio WhatsApp sender number (overrides $TWILIO_FROM_NUMBER)"),
	}
	flag.Parse()
	return flags
}

// buildArchiveStore selects the booking archive backend from the configured
// driver, inferring it from the DSN when unset.
func buildArchiveStore(flags Flags) (store.Store, error) {
	driver := strings.ToLower(*flags.dbDriver)
	if driver == "" {
		if strings.HasPrefix(*flags.dbDSN, "postgres://") || strings.Contains(*flags.dbDSN, "host=") {
			driver = "postgres"
		} else {
			driver = "sqlite3"
		}
	}

	switch driver {
	case "postgres":
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	case "sqlite3", "sqlite":
		return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
	case "memory":
		return store.NewInMemoryStore(), nil
	default:
		slog.Warn("Unknown database driver, falling back to in-memory archive", "driver", driver)
		return store.NewInMemoryStore(), nil
	}
}
