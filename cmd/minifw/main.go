package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minifw/internal/config"
	"github.com/vango-dev/minifw/internal/errors"
)

// Version information set at build time.
var (
	commit = "none"
	date   = "unknown"
)

func main() {
	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}
	if err := rootCmd().Execute(); err != nil {
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			fmt.Fprint(os.Stderr, coded.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "minifw",
		Short: "A small virtual DOM framework with a todo demo",
		Long: `minifw renders apps from a virtual node tree, keeps state in a
single store and routes with hash or history navigation.

The bundled todo app can be served live over WebSocket or rendered
to HTML from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: minifw.json or minifw.yaml in the working directory)")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}
	root.AddCommand(
		serveCmd(load),
		renderCmd(load),
		versionCmd(),
	)
	return root
}

// loadConfig reads path, or the config in the working directory, or falls
// back to defaults when there is none.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
