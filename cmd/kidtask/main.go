package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/imkarma/kidtask/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the working directory may set KIDTASK_* overrides.
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
