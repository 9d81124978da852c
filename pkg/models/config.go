package models

// AlertConfig holds staleness thresholds for the alert engine.
type AlertConfig struct {
	ApprovalHours int `yaml:"approval_hours"`
	PendingHours  int `yaml:"pending_hours"`
}

// NotificationConfig controls outbound alert notifications.
type NotificationConfig struct {
	Enabled bool `yaml:"enabled"`
	Slack   struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"slack"`
}

// Config is the merged configuration loaded from .vaultconfig plus
// defaults. BasePath is resolved separately (VAULT_HOME or cwd).
type Config struct {
	VaultPath     string             `yaml:"vault_path"`
	Owner         string             `yaml:"owner"`
	Business      string             `yaml:"business"`
	HTTPAddr      string             `yaml:"http_addr"`
	PollInterval  int                `yaml:"poll_interval_seconds"`
	DryRun        bool               `yaml:"dry_run"`
	Alerts        AlertConfig        `yaml:"alerts"`
	Notifications NotificationConfig `yaml:"notifications"`
}
