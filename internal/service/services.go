package service

import (
	"moneykeeper/internal/config"
	"moneykeeper/internal/logger"
	"moneykeeper/internal/store"
)

type Services struct {
	AuthService      AuthService
	ExpenseService   RecordService
	IncomeService    RecordService
	DashboardService DashboardService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		ExpenseService:   NewRecordService(storages.ExpenseRepository, logger),
		IncomeService:    NewRecordService(storages.IncomeRepository, logger),
		DashboardService: NewDashboardService(storages.ExpenseRepository, storages.IncomeRepository, logger),
	}
}
