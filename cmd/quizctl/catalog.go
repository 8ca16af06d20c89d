package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/infrastructure/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Dependency catalog tools",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a catalog file and list its groups",
	Long:  "Validates the given catalog file, or CATALOG_PATH when omitted. With neither, the built-in groups are listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.CatalogPath
		if len(args) == 1 {
			path = args[0]
		}

		cat, err := config.LoadCatalog(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		groups := cat.Dependencies.Groups()
		principals := make([]questionbank.ID, 0, len(groups))
		for p := range groups {
			principals = append(principals, p)
		}
		sort.Slice(principals, func(i, j int) bool { return principals[i] < principals[j] })

		for _, p := range principals {
			fmt.Fprintf(out, "%s -> %v\n", p, groups[p])
		}
		fmt.Fprintf(out, "%d groups, %d media overlays: ok\n", len(groups), len(cat.Media))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogCheckCmd)
}
