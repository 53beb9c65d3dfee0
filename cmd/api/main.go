package main

import (
	"os"

	"github.com/acortes/biblioteca/internal/pkg/logger"
	"github.com/acortes/biblioteca/internal/server"
)

// @title Biblioteca API
// @version 1.0
// @description REST API for the library service: catalog, loans, reservations and digital materials

// @contact.name API Support
// @contact.email soporte@biblioteca.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
