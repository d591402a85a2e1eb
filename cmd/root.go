package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gpu-mcp/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gpu-mcp",
	Short: "MCP server for the Géoportail de l'Urbanisme",
	Long:  "Exposes the French Géoportail de l'Urbanisme API as MCP tools: territory search, planning documents, procedures, CNIG standards, and point or parcel spatial lookups.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
