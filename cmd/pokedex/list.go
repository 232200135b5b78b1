package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/catalog"
)

var listQuery string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog",
	Long:  `Load the listing once and print every entry, optionally filtered by name or number.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "filter by name or number")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	svc, err := app.NewServices(cfg, stderrLogger())
	if err != nil {
		return err
	}
	if err := app.LoadListing(ctx, svc.Store, svc.Client, svc.LoaderOptions(false)); err != nil {
		return err
	}

	svc.Store.SetSearchTerm(listQuery)
	entities := svc.Store.Filtered()
	if len(entities) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no matches")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderListTable(entities))
	return nil
}

func renderListTable(entities []catalog.Entity) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("No", "Name").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, e := range entities {
		t.Row("#"+e.DisplayID(), e.Name)
	}
	return t.String()
}
