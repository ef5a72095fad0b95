package cli

import (
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath    string
	Config      *models.BoardConfig
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
