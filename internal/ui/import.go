package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/salonboard/internal/booking"
)

// ErrNotSeedable is returned when the configured store cannot take imports.
var ErrNotSeedable = errors.New("store does not support roster import")

// Roster is the YAML file accepted by the import command.
type Roster struct {
	Resources []RosterResource `yaml:"resources"`
	Services  []RosterService  `yaml:"services"`
}

// RosterResource is one column of the board.
type RosterResource struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// RosterService is one bookable service. Price is a decimal string.
type RosterService struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Duration int    `yaml:"duration"`
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <roster.yaml>",
		Short: "Import resources and services from a YAML roster",
		Long: `Create or update resources and services from a YAML file.
Resources keep the order they are listed in.

Example roster:
  resources:
    - {id: mia, name: Mia, color: "#f5a97f"}
    - {id: leo, name: Leo}
  services:
    - {id: cut, name: Cut, price: "30.00", duration: 30}

Example:
  salonboard import roster.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			seeder, ok := a.store.(booking.Seeder)
			if !ok {
				return ErrNotSeedable
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			roster, err := readRoster(path)
			if err != nil {
				return err
			}

			resources, services, err := importRoster(context.Background(), seeder, roster)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d resources and %d services from %s\n", resources, services, path)
			return nil
		},
	}

	return cmd
}

func readRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("roster does not exist: %s", path)
		}
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return &r, nil
}

// importRoster validates every row before writing any, then upserts.
func importRoster(ctx context.Context, dest booking.Seeder, r *Roster) (resources, services int, err error) {
	resRecords := make([]booking.ResourceRecord, 0, len(r.Resources))
	for _, res := range r.Resources {
		rec := booking.ResourceRecord{ID: res.ID, DisplayName: res.Name, ColorHex: res.Color}
		if err := rec.Validate(); err != nil {
			return 0, 0, err
		}
		resRecords = append(resRecords, rec)
	}

	svcRecords := make([]booking.ServiceRecord, 0, len(r.Services))
	for _, svc := range r.Services {
		price := decimal.Zero
		if svc.Price != "" {
			if price, err = decimal.NewFromString(svc.Price); err != nil {
				return 0, 0, fmt.Errorf("service %s: invalid price %q", svc.ID, svc.Price)
			}
		}
		rec := booking.ServiceRecord{ID: svc.ID, Name: svc.Name, Price: price, DurationMinutes: svc.Duration}
		if err := rec.Validate(); err != nil {
			return 0, 0, err
		}
		svcRecords = append(svcRecords, rec)
	}

	for i, rec := range resRecords {
		if err := dest.UpsertResource(ctx, rec, i); err != nil {
			return resources, services, fmt.Errorf("importing resource %q: %w", rec.ID, err)
		}
		resources++
	}
	for _, rec := range svcRecords {
		if err := dest.UpsertService(ctx, rec); err != nil {
			return resources, services, fmt.Errorf("importing service %q: %w", rec.ID, err)
		}
		services++
	}
	return resources, services, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
