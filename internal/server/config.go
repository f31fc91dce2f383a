package server

import (
	"github.com/raysh454/kensa/internal/app"
	"github.com/raysh454/kensa/internal/interfaces"
)

// Config wires the server to its app configuration and logger.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string

	// AppConfig supplies the scan pipeline configuration. Nil means defaults.
	AppConfig *app.Config

	// Logger receives request and pipeline logs. Nil means a stdout logger.
	Logger interfaces.Logger
}
