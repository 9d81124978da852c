// Package config loads the triage vault configuration from a
// .vaultconfig YAML file in the base path, falling back to defaults for
// every missing key.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

// Manager loads the merged vault configuration.
type Manager interface {
	Load() (*models.Config, error)
}

// viperConfigManager implements Manager using Viper for reading the
// YAML configuration file.
type viperConfigManager struct {
	// basePath is the directory where .vaultconfig resides.
	basePath string
}

// NewManager creates a Manager that reads configuration relative to
// basePath.
func NewManager(basePath string) Manager {
	return &viperConfigManager{basePath: basePath}
}

// Default returns a Config populated with the standard defaults.
func Default() *models.Config {
	cfg := &models.Config{
		VaultPath:    "vault",
		Owner:        "Owner",
		Business:     "My Business",
		HTTPAddr:     ":8787",
		PollInterval: 60,
		DryRun:       false,
		Alerts: models.AlertConfig{
			ApprovalHours: 24,
			PendingHours:  12,
		},
	}
	cfg.Notifications.Enabled = false
	return cfg
}

// Load reads .vaultconfig from the base path. A missing file returns
// the defaults without error.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".vaultconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("vault_path", cfg.VaultPath)
	v.SetDefault("owner", cfg.Owner)
	v.SetDefault("business", cfg.Business)
	v.SetDefault("http_addr", cfg.HTTPAddr)
	v.SetDefault("poll_interval_seconds", cfg.PollInterval)
	v.SetDefault("dry_run", cfg.DryRun)
	v.SetDefault("alerts.approval_hours", cfg.Alerts.ApprovalHours)
	v.SetDefault("alerts.pending_hours", cfg.Alerts.PendingHours)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.slack.webhook_url", cfg.Notifications.Slack.WebhookURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .vaultconfig: %w", err)
	}

	cfg.VaultPath = v.GetString("vault_path")
	cfg.Owner = v.GetString("owner")
	cfg.Business = v.GetString("business")
	cfg.HTTPAddr = v.GetString("http_addr")
	cfg.PollInterval = v.GetInt("poll_interval_seconds")
	cfg.DryRun = v.GetBool("dry_run")
	cfg.Alerts.ApprovalHours = v.GetInt("alerts.approval_hours")
	cfg.Alerts.PendingHours = v.GetInt("alerts.pending_hours")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")

	return cfg, nil
}

// ResolveBasePath returns the directory holding the vault and its
// configuration: the VAULT_HOME environment variable when set,
// otherwise the current working directory.
func ResolveBasePath() (string, error) {
	if home := os.Getenv("VAULT_HOME"); home != "" {
		return home, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving base path: %w", err)
	}
	return cwd, nil
}
