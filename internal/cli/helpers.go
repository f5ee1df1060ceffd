package cli

import (
	"encoding/json"
	"fmt"
	"io"

	corecfg "github.com/aevon-lab/experiment-tracker/internal/core/config"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage/warehouse"
	"github.com/aevon-lab/experiment-tracker/internal/experiment"
)

// app is the wired dependency set shared by every command.
type app struct {
	cfg     *corecfg.Config
	client  *warehouse.Client
	service *experiment.Service
}

// withApp loads config, opens the warehouse, executes the function, and handles cleanup.
func withApp(fn func(*app) error) error {
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cols, err := cfg.Columns.Resolve()
	if err != nil {
		return fmt.Errorf("invalid column mapping: %w", err)
	}

	client, err := warehouse.NewClient(warehouse.Options{
		Driver:       cfg.Warehouse.Driver,
		DSN:          cfg.Warehouse.DSN,
		MaxOpenConns: cfg.Warehouse.MaxOpenConns,
		MaxIdleConns: cfg.Warehouse.MaxIdleConns,
		QueryTimeout: cfg.Warehouse.QueryTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize warehouse: %w", err)
	}
	defer client.Close()

	svc := experiment.NewService(client, cols, experiment.Options{
		Profile:        cfg.Warehouse.Profile,
		EventNameValue: cfg.Query.EventNameValue,
		DefaultDays:    cfg.Query.DefaultDays,
		MaxDays:        cfg.Query.MaxDays,
	})

	return fn(&app{cfg: cfg, client: client, service: svc})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
