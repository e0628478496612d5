// Package cli provides the command-line interface for the skrapa
// application.
package cli

import (
	"github.com/prisindex/skrapa/internal/app"
)

// Global reference shared by the commands; set up in PersistentPreRunE and
// cleared after the command finishes.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the current Application.
func GetApp() *app.Application {
	return globalApp
}
