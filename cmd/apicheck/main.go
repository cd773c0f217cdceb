package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"fleet-console/internal/config"
	"fleet-console/internal/services/fleetapi"
	"fleet-console/internal/table"

	log "github.com/sirupsen/logrus"
)

type probe struct {
	name string
	run  func(ctx context.Context) (string, error)
}

func main() {
	vehicleID := 0
	flag.IntVar(&vehicleID, "vehicle", 0, "id транспорта для проверки /control/:id/total_km")
	flag.Parse()

	cfg := config.Load()
	log.SetLevel(cfg.GetLogLevel())

	client := fleetapi.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	fmt.Printf("Проверяем API автопарка: %s\n", client.BaseURL())

	probes := []probe{
		{"vehicle.list", func(ctx context.Context) (string, error) {
			p, err := client.ListVehicles(ctx, 1, table.DefaultPageSize, "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d записей, %d страниц", p.TotalItems, p.TotalPages), nil
		}},
		{"driver.list", func(ctx context.Context) (string, error) {
			p, err := client.ListDrivers(ctx, 1, table.DefaultPageSize, "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d записей, %d страниц", p.TotalItems, p.TotalPages), nil
		}},
		{"control.list", func(ctx context.Context) (string, error) {
			p, err := client.ListControls(ctx, 1, table.DefaultPageSize, "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d записей, %d страниц", p.TotalItems, p.TotalPages), nil
		}},
	}
	if vehicleID > 0 {
		probes = append(probes, probe{"control.total_km", func(ctx context.Context) (string, error) {
			check, err := client.TotalKm(ctx, vehicleID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("пробег %d km", check.TotalKm), nil
		}})
	}

	failed := 0
	for _, p := range probes {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout+time.Second)
		start := time.Now()
		result, err := p.run(ctx)
		cancel()

		if err != nil {
			failed++
			fmt.Printf("FAIL %-18s %v\n", p.name, err)
			continue
		}
		fmt.Printf("OK   %-18s %s (%s)\n", p.name, result, time.Since(start).Round(time.Millisecond))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
