// Package internal provides the App struct that wires all components of
// Triage Vault together and initializes the CLI layer.
package internal

import (
	"path/filepath"

	"github.com/valter-silva-au/triagevault/internal/cli"
	"github.com/valter-silva-au/triagevault/internal/config"
	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/producer"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// App holds all service dependencies for Triage Vault.
type App struct {
	BasePath string
	Config   *models.Config

	Vault     *vault.Vault
	Router    *triage.Router
	Simulator *producer.Simulator

	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	Metrics     observability.Aggregator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components. basePath is the directory
// holding the vault and the .vaultconfig file (typically the cwd or
// VAULT_HOME).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	cfg, err := config.NewManager(basePath).Load()
	if err != nil {
		// Fall back to defaults on a malformed config file.
		cfg = config.Default()
	}
	app.Config = cfg

	vaultPath := cfg.VaultPath
	if !filepath.IsAbs(vaultPath) {
		vaultPath = filepath.Join(basePath, vaultPath)
	}
	app.Vault = vault.New(vaultPath)

	// --- Observability ---
	eventLogPath := app.Vault.Path(vault.FolderLogs, "events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without event recording if the log can't be
		// created.
		app.EventLog = nil
	}

	thresholds := observability.DefaultAlertThresholds()
	if cfg.Alerts.ApprovalHours > 0 {
		thresholds.ApprovalHours = cfg.Alerts.ApprovalHours
	}
	if cfg.Alerts.PendingHours > 0 {
		thresholds.PendingHours = cfg.Alerts.PendingHours
	}
	app.AlertEngine = observability.NewAlertEngine(app.Vault, thresholds)
	app.Metrics = observability.NewAggregator(app.Vault, app.AlertEngine)

	if cfg.Notifications.Enabled && cfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notifications.Slack.WebhookURL)
	}

	// --- Engine ---
	app.Router = triage.NewRouter(app.Vault, app.EventLog)
	app.Simulator = producer.NewSimulator(app.Vault)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Vault = app.Vault
	cli.Router = app.Router
	cli.Simulator = app.Simulator

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.Metrics = app.Metrics
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. Safe to call when EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}
