// loadplannerctl — command-line interface to the loadplanner engine,
// fleet partitioner, and HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cargoplan/loadplanner/internal/engine"
	"github.com/cargoplan/loadplanner/internal/fleet"
	"github.com/cargoplan/loadplanner/internal/httpapi"
	"github.com/cargoplan/loadplanner/internal/importer"
	"github.com/cargoplan/loadplanner/internal/model"
)

func main() {
	root := &cobra.Command{
		Use:   "loadplannerctl",
		Short: "loadplanner — 3D cargo load planning from the command line",
	}

	root.AddCommand(optimizeCmd(), fleetCmd(), serveCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadItems reads a JSON array of model.Item from path.
func loadItems(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return items, nil
}

// loadTruck reads a single JSON model.TruckSpecs from path.
func loadTruck(path string) (model.TruckSpecs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.TruckSpecs{}, fmt.Errorf("read truck: %w", err)
	}
	var truck model.TruckSpecs
	if err := json.Unmarshal(data, &truck); err != nil {
		return model.TruckSpecs{}, fmt.Errorf("parse truck: %w", err)
	}
	return truck, nil
}

// loadTrucks reads a JSON array of model.TruckSpecs from path.
func loadTrucks(path string) ([]model.TruckSpecs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read truck catalog: %w", err)
	}
	var trucks []model.TruckSpecs
	if err := json.Unmarshal(data, &trucks); err != nil {
		return nil, fmt.Errorf("parse truck catalog: %w", err)
	}
	return trucks, nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func optimizeCmd() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "optimize <manifest.json> <truck.json>",
		Short: "Pack a manifest of items into a single truck and print the placement result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadItems(args[0])
			if err != nil {
				return err
			}
			truck, err := loadTruck(args[1])
			if err != nil {
				return err
			}

			cfg := model.DefaultPlannerConfig()
			if algorithm != "" {
				cfg.Algorithm = algorithm
			}

			result, err := engine.Optimize(items, truck, cfg)
			if err != nil {
				return fmt.Errorf("optimize: %w", err)
			}

			printJSON(result)
			if len(result.UnplacedItemIDs) > 0 {
				fmt.Fprintf(os.Stderr, "%d item(s) could not be placed\n", len(result.UnplacedItemIDs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "packing algorithm: simple or genetic (default: genetic)")
	return cmd
}

func fleetCmd() *cobra.Command {
	var trucksPath string
	var distanceKM float64

	cmd := &cobra.Command{
		Use:   "fleet <manifest.json>",
		Short: "Suggest a fleet of trucks for a manifest and print cost-ranked scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadItems(args[0])
			if err != nil {
				return err
			}
			if trucksPath == "" {
				return fmt.Errorf("--trucks is required")
			}
			trucks, err := loadTrucks(trucksPath)
			if err != nil {
				return err
			}

			scenarios := fleet.SuggestFleet(items, trucks, distanceKM)
			printJSON(scenarios)
			return nil
		},
	}
	cmd.Flags().StringVar(&trucksPath, "trucks", "", "path to a JSON truck catalog")
	cmd.Flags().Float64Var(&distanceKM, "distance-km", 0, "route distance in kilometers, for cost estimation")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the loadplanner HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:    addr,
				Handler: httpapi.NewRouter(),
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				fmt.Printf("loadplannerctl serve: listening on %s\n", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				fmt.Println("shutting down...")
				return srv.Close()
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a CSV or Excel manifest and print the resulting items, warnings, and errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var result importer.ImportResult
			if isExcel(path) {
				result = importer.ImportExcel(path)
			} else {
				result = importer.ImportCSV(path)
			}

			printJSON(result)
			if len(result.Errors) > 0 {
				fmt.Fprintf(os.Stderr, "%d row(s) failed to import\n", len(result.Errors))
			}
			return nil
		},
	}
	return cmd
}

func isExcel(path string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			ext := path[i:]
			return ext == ".xlsx" || ext == ".xls"
		}
	}
	return false
}
