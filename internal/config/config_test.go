package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "db.internal"
user = "app"
dbname = "slots"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, domain.DefaultDaysAhead, cfg.Slots.DaysAhead)
	assert.Equal(t, domain.DefaultMaxSlotsPerService, cfg.Slots.MaxSlotsPerService)
	assert.Equal(t, "0 2 * * *", cfg.Scheduler.MaintenanceSpec)
	assert.True(t, cfg.Scheduler.MaintenanceEnabled)
}

func TestLoad_EnvOverridesDatabaseCredentials(t *testing.T) {
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad port", minimalConfig + "\n[server]\nhttp_port = -1\n"},
		{"days ahead too large", minimalConfig + "\n[slots]\ndays_ahead = 999\n"},
		{"negative retention", minimalConfig + "\n[slots]\nretention_days = -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestCategoryTable_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	table, err := cfg.CategoryTable()
	require.NoError(t, err)
	assert.Len(t, table.Rules, 4)
	assert.Equal(t, 25, table.FeeFor(domain.CategoryRush))
}

func TestCategoryTable_ConfiguredRulesReplaceDefaults(t *testing.T) {
	content := minimalConfig + `
[[slots.category_rules]]
name = "friday_express"
days = ["fri"]
from = "08:00"
to = "10:00"
category = "express"

[slots.category_fees]
express = 40
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	table, err := cfg.CategoryTable()
	require.NoError(t, err)

	require.Len(t, table.Rules, 1)
	assert.Equal(t, "friday_express", table.Rules[0].Name)
	assert.Equal(t, []time.Weekday{time.Friday}, table.Rules[0].Days)
	assert.Equal(t, domain.CategoryExpress, table.Rules[0].Category)

	// Configured fee overlays the default; untouched categories keep theirs.
	assert.Equal(t, 40, table.FeeFor(domain.CategoryExpress))
	assert.Equal(t, 25, table.FeeFor(domain.CategoryRush))
}

func TestCategoryTable_RejectsBadRules(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown weekday", minimalConfig + "\n[[slots.category_rules]]\nname = \"r\"\ndays = [\"funday\"]\nfrom = \"08:00\"\nto = \"10:00\"\ncategory = \"peak\"\n"},
		{"reversed band", minimalConfig + "\n[[slots.category_rules]]\nname = \"r\"\ndays = [\"mon\"]\nfrom = \"10:00\"\nto = \"08:00\"\ncategory = \"peak\"\n"},
		{"unknown category", minimalConfig + "\n[[slots.category_rules]]\nname = \"r\"\ndays = [\"mon\"]\nfrom = \"08:00\"\nto = \"10:00\"\ncategory = \"vip\"\n"},
		{"fee out of range", minimalConfig + "\n[slots.category_fees]\nrush = 150\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestSchedulerConfig_TimeBudget(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+"\n[scheduler]\ntime_budget_seconds = 90\n"))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Scheduler.TimeBudget())
}
