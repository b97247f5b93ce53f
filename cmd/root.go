package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/config"
	"github.com/quizsmith/quizsmith/internal/logging"
	"github.com/quizsmith/quizsmith/internal/quiz"
	"github.com/quizsmith/quizsmith/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizsmith",
	Short: "Generate multiple-choice quizzes from documents",
	Long: "quizsmith turns study material into multiple-choice quizzes with an LLM, " +
		"serves the generator over HTTP and plays saved quizzes in the terminal.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default: ./quizsmith.yaml)")
	pf.String("audit-db", "", `Path to SQLite audit database, or "default" for the XDG data dir (overrides QUIZSMITH_AUDIT_DB)`)
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps bundles what the generating commands share.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup loads configuration, applies persistent flag overrides and builds
// the logger. The audit store is opened only when a path is configured.
func setup(cmd *cobra.Command) (*deps, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	dbPath, err := auditPath(cmd, cfg)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logger}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open audit db: %w", err)
		}
		rt.store = st
		logger.Debug("audit log enabled", zap.String("path", dbPath))
	}
	return rt, nil
}

func (rt *deps) generator() *quiz.Generator {
	var opts []quiz.Option
	if rt.store != nil {
		opts = append(opts, quiz.WithAuditRecorder(rt.store.EventRepo()))
	}
	return quiz.New(nil, rt.cfg.LLM, rt.logger, opts...)
}

func (rt *deps) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
	_ = rt.logger.Sync()
}

// defaultAuditDB selects store.DefaultDBPath as the audit database.
const defaultAuditDB = "default"

var errAuditDisabled = errors.New("audit log is disabled; set QUIZSMITH_AUDIT_DB or --audit-db")

// auditPath is the one rule for where the audit log lives: --audit-db, then
// QUIZSMITH_AUDIT_DB, with "default" meaning the XDG data dir. An empty
// result means auditing is off. The parent directory is created.
func auditPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p := cfg.AuditDB
	if flag, _ := cmd.Flags().GetString("audit-db"); flag != "" {
		p = flag
	}
	switch p {
	case "":
		return "", nil
	case defaultAuditDB:
		p, err := store.DefaultDBPath()
		if err != nil {
			return "", fmt.Errorf("resolve audit db path: %w", err)
		}
		return p, nil
	}
	if err := store.EnsureDir(p); err != nil {
		return "", fmt.Errorf("create audit db dir: %w", err)
	}
	return p, nil
}

// resolveDBPath returns the audit database path for read-only commands,
// failing when auditing is not configured.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return "", err
	}
	p, err := auditPath(cmd, cfg)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", errAuditDisabled
	}
	return p, nil
}
