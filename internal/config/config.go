// Package config provides application configuration loading from environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/models"
)

// Config holds all configuration for the finance core.
type Config struct {
	DatabasePath  string
	LogLevel      string
	MonthlyBudget decimal.Decimal
	WeeklyBudget  decimal.Decimal
}

// Load reads configuration from environment variables, with a .env file
// as optional source. Missing or malformed values fall back to defaults;
// an embedded core must come up even with no configuration at all.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:  os.Getenv("FINANZAPP_DB_PATH"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		MonthlyBudget: models.DefaultMonthlyBudget,
		WeeklyBudget:  models.DefaultWeeklyBudget,
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(".", "finanzapp.db")
	}

	if raw := os.Getenv("FINANZAPP_MONTHLY_BUDGET"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil && v.IsPositive() {
			cfg.MonthlyBudget = v
		}
	}
	if raw := os.Getenv("FINANZAPP_WEEKLY_BUDGET"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil && v.IsPositive() {
			cfg.WeeklyBudget = v
		}
	}

	return cfg
}

// Budget returns the configured default budget limits.
func (c *Config) Budget() models.BudgetSettings {
	return models.BudgetSettings{Monthly: c.MonthlyBudget, Weekly: c.WeeklyBudget}
}
