package cli

import (
	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/producer"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	Config    *models.Config
	Vault     *vault.Vault
	Router    *triage.Router
	Simulator *producer.Simulator

	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	Metrics     observability.Aggregator
	Notifier    observability.Notifier
)
