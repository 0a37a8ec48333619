package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/maestro/internal/config"
	"github.com/ShayCichocki/maestro/internal/registry"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List registered agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		reg, err := registry.Load(cfg.Registry.Path)
		if err != nil {
			return fmt.Errorf("load agent registry: %w", err)
		}

		metas := reg.List()
		if len(metas) == 0 {
			fmt.Println("No agents registered.")
			return nil
		}

		for _, meta := range metas {
			fmt.Printf("%s (%s)\n", color.New(color.Bold).Sprint(meta.Name), meta.Type)
			if meta.Endpoint != "" {
				fmt.Printf("  endpoint: %s\n", meta.Endpoint)
			}
			if meta.Intent != "" {
				fmt.Printf("  intent:   %s\n", meta.Intent)
			}
			if len(meta.Keywords) > 0 {
				fmt.Printf("  keywords: %s\n", strings.Join(meta.Keywords, ", "))
			}
		}
		return nil
	},
}
