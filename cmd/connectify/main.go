// Command connectify serves the address book over gRPC and HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/gartstein/connectify/internal/addressbook/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "connectify",
	Short:         "Address book of persons and companies",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func syncLogger(logger *zap.Logger) {
	// Sync fails on non-file stderr; there is nowhere left to report it.
	_ = logger.Sync()
}
