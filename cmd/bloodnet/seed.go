package main

import (
	"context"
	"fmt"

	"bloodnet/internal/bloodapi"
	"bloodnet/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Push sample donors and requests into the backing service",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		logger := logrus.New()
		api := bloodapi.New(cfg.APIBaseURL, logger)

		logrus.Info("Seeding donors...")
		if err := seed.Donors(ctx, api); err != nil {
			return fmt.Errorf("failed to seed donors: %w", err)
		}

		logrus.Info("Seeding requests...")
		if err := seed.Requests(ctx, api); err != nil {
			return fmt.Errorf("failed to seed requests: %w", err)
		}

		logrus.Info("Seed data submitted successfully")

		return nil
	},
}
