package cli

import (
	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/queries"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/services"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	LogTaskHandler  *commands.LogTaskHandler
	LogBreakHandler *commands.LogBreakHandler
	LogMoodHandler  *commands.LogMoodHandler

	// Query Handlers
	GetDashboardHandler *queries.GetDashboardHandler
	GetUserStatsHandler *queries.GetUserStatsHandler

	// Services
	Refresher *services.Refresher

	// Current user (single-user CLI mode)
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI app with the given handlers.
func NewApp(
	logTask *commands.LogTaskHandler,
	logBreak *commands.LogBreakHandler,
	logMood *commands.LogMoodHandler,
	getDashboard *queries.GetDashboardHandler,
	getUserStats *queries.GetUserStatsHandler,
	refresher *services.Refresher,
) *App {
	return &App{
		LogTaskHandler:      logTask,
		LogBreakHandler:     logBreak,
		LogMoodHandler:      logMood,
		GetDashboardHandler: getDashboard,
		GetUserStatsHandler: getUserStats,
		Refresher:           refresher,
		CurrentUserID:       uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

var appInstance *App

// SetApp sets the global CLI app instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI app instance.
func GetApp() *App {
	return appInstance
}
