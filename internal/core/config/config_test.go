package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aevon-lab/experiment-tracker/internal/core/columns"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "experiment-tracker.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	requireNoError(t, err)

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Warehouse.Driver != "postgres" || cfg.Warehouse.QueryTimeout != time.Minute {
		t.Fatalf("unexpected warehouse defaults: %+v", cfg.Warehouse)
	}
	if cfg.Query.DefaultDays != 30 || cfg.Query.MaxDays != 365 {
		t.Fatalf("unexpected query defaults: %+v", cfg.Query)
	}

	cols, err := cfg.Columns.Resolve()
	requireNoError(t, err)
	if !cols.Partitioned() || cols.Encoding != columns.EncodingBlob {
		t.Fatalf("expected partitioned blob columns, got %+v", cols)
	}
}

func TestLoad_ValidConfigFile(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
  mode: "debug"
  allowed_origins: ["http://localhost:5173"]
  app_name: "Tracker"
warehouse:
  driver: "databricks"
  dsn: "token:abc@example.cloud.databricks.com:443/sql/1.0/warehouses/123"
  profile: "prod"
  query_timeout: "2m"
columns:
  table: "main.analytics.events"
  gcid: "user_gcid"
  experiment_id: "exp_ids"
  experiment_name: "exp_name"
  variant: "variant_id"
  variant_blob: "variant_ids"
  event_name: "event_name"
query:
  event_name_value: "experiment_started"
  max_days: 90
`)

	cfg, err := Load(cfgPath)
	requireNoError(t, err)

	if cfg.Server.Addr() != "127.0.0.1:9090" || cfg.Server.Mode != "debug" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Warehouse.Profile != "prod" || cfg.Warehouse.QueryTimeout != 2*time.Minute {
		t.Fatalf("unexpected warehouse config: %+v", cfg.Warehouse)
	}

	cols, err := cfg.Columns.Resolve()
	requireNoError(t, err)
	if cols.Table != "main.analytics.events" || cols.GCID != "user_gcid" {
		t.Fatalf("unexpected columns %+v", cols)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKER_SERVER__PORT", "7000")
	t.Setenv("TRACKER_SERVER__ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRACKER_WAREHOUSE__DRIVER", "sqlite")
	t.Setenv("TRACKER_WAREHOUSE__DSN", "file:events.db")
	t.Setenv("TRACKER_COLUMNS__EXPERIMENT_ID_ENCODING", "scalar")

	cfg, err := Load("")
	requireNoError(t, err)

	if cfg.Server.Port != 7000 {
		t.Fatalf("expected env port override, got %d", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Warehouse.Driver != "sqlite" || cfg.Warehouse.DSN != "file:events.db" {
		t.Fatalf("unexpected warehouse config: %+v", cfg.Warehouse)
	}
	if cfg.Columns.ExperimentIDEncoding != "scalar" {
		t.Fatalf("unexpected encoding %q", cfg.Columns.ExperimentIDEncoding)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Fatalf("expected config file error, got %v", err)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "invalid port",
			body:    "server:\n  port: -1\n",
			wantErr: "invalid server.port",
		},
		{
			name:    "invalid mode",
			body:    "server:\n  mode: \"verbose\"\n",
			wantErr: "invalid server.mode",
		},
		{
			name:    "unsupported driver",
			body:    "warehouse:\n  driver: \"oracle\"\n",
			wantErr: "unsupported warehouse.driver",
		},
		{
			name:    "max days above a year",
			body:    "query:\n  max_days: 400\n",
			wantErr: "query.max_days must be between 1 and 365",
		},
		{
			name:    "default days above max",
			body:    "query:\n  max_days: 7\n  default_days: 30\n",
			wantErr: "query.default_days",
		},
		{
			name:    "injected table name",
			body:    "columns:\n  table: \"events; DROP TABLE users\"\n",
			wantErr: "invalid columns config",
		},
		{
			name:    "partial partition columns",
			body:    "columns:\n  partition_day: \"\"\n",
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q error, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_InvalidColumnIsConfigurationError(t *testing.T) {
	_, err := Load(writeConfig(t, "columns:\n  gcid: \"user-id\"\n"))
	if !errors.Is(err, columns.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
