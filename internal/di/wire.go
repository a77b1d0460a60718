//go:build wireinject
// +build wireinject

package di

import (
	"CashRadar/pkg/config"
	"CashRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideSnapshotStore,

		ProvidePipelineConfig,
		ProvidePipeline,
		ProvideViews,
		ProvideRefresher,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
