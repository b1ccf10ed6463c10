package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// Local development keeps config in a .env file; missing is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "bloodnet",
		Usage: "Server-side rendered web front end for the BloodNet donation service",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			keygenCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
