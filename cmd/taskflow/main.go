// Package main is the entry point for the taskflow CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/cli"
	"github.com/runoshun/taskflow/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is a function variable so tests can observe execution.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	dataDir, err := resolveDataDir(args, os.Getenv)
	if err != nil {
		return err
	}

	container, err := app.New(dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if cerr := container.Close(); cerr != nil {
			fmt.Fprintln(os.Stderr, "Warning:", cerr)
		}
	}()

	rootCmd := newRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// resolveDataDir picks the data directory: the --data-dir flag,
// then $TASKFLOW_DATA_DIR, then $XDG_DATA_HOME/taskflow, then ~/.local/share/taskflow.
// The flag is scanned here because the container is built before cobra parses flags.
func resolveDataDir(args []string, getenv func(string) string) (string, error) {
	flag := "--" + cli.DataDirFlag
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag needs an argument: %s", flag)
			}
			return args[i+1], nil
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v, nil
		}
	}

	if dir := getenv(domain.DataDirEnv); dir != "" {
		return dir, nil
	}
	if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, domain.AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", domain.AppDirName), nil
}
