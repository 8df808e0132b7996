//go:build wireinject
// +build wireinject

package di

import (
	"RxPulse/pkg/config"
	"RxPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,

		// Model registry
		ProvideRegistry,

		// Infrastructure
		ProvideForecastCache,
		ProvideAuditPublisher,
		ProvideAuditStorage,

		// Use cases
		ProvideAuditRecorder,
		ProvidePredictor,
		ProvideForecaster,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
