package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/verduras-pro/internal/interfaces/cli"
	"github.com/jhoicas/verduras-pro/pkg/config"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Env:    "development",
		Level:  os.Getenv("LOG_LEVEL"),
		Output: os.Stderr,
	})
	c := cli.NewCLI(cli.Options{
		Output:     os.Stdout,
		LoadConfig: config.Load,
		Logger:     log,
	})
	if err := c.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
