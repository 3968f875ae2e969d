package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/internal/config"
	"github.com/turnoswap/turnoswap/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
