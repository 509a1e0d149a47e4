package server

import (
	"github.com/google/wire"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
	"github.com/modu-soho/buzz_dashboard/internal/data"
	"github.com/modu-soho/buzz_dashboard/internal/service"
)

// ProviderSet wires the dashboard service together.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewUserRepo,
	data.NewDailyReportRepo,
	data.NewWeeklyReportRepo,
	data.NewMonthlyReportRepo,
	data.NewSeeder,

	// UseCase providers
	biz.NewUserUseCase,
	biz.NewReportUseCase,

	// Service providers
	service.NewDashboardService,
)
