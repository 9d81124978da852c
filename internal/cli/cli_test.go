package cli

import (
	"testing"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/producer"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// setupCLI wires the package-level service vars to a fresh initialized
// vault and restores the originals on cleanup.
func setupCLI(t *testing.T) *vault.Vault {
	t.Helper()

	origVault, origRouter, origSim := Vault, Router, Simulator
	origMetrics, origAlerts, origNotifier := Metrics, AlertEngine, Notifier
	origConfig := Config
	t.Cleanup(func() {
		Vault, Router, Simulator = origVault, origRouter, origSim
		Metrics, AlertEngine, Notifier = origMetrics, origAlerts, origNotifier
		Config = origConfig
	})

	v := vault.New(t.TempDir())
	if _, err := v.Init("Riley", "Acme Consulting"); err != nil {
		t.Fatalf("initializing vault: %v", err)
	}

	Vault = v
	Router = triage.NewRouter(v, nil)
	Simulator = producer.NewSimulator(v)
	AlertEngine = observability.NewAlertEngine(v, observability.DefaultAlertThresholds())
	Metrics = observability.NewAggregator(v, AlertEngine)
	Notifier = nil
	Config = &models.Config{Owner: "Riley", Business: "Acme Consulting"}

	return v
}

func writeQueueItem(t *testing.T, v *vault.Vault, filename string, meta map[string]string, body string) {
	t.Helper()
	if err := v.Write(vault.FolderNeedsAction, filename, document.Render(meta, body)); err != nil {
		t.Fatalf("writing %s: %v", filename, err)
	}
}

func TestCommandRegistration(t *testing.T) {
	expected := []string{
		"version", "init", "status", "serve", "process", "pending",
		"approvals", "dashboard", "refresh", "alerts", "simulate",
		"recover", "watch", "mcp",
	}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}
