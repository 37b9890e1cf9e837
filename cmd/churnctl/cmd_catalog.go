package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/liamcoop/churn/catalog"
	"github.com/spf13/cobra"
)

func runCatalog(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.Churn.Fields())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "KIND", "SECTION", "CONSTRAINT", "DEFAULT")
	for i, f := range catalog.Churn.Fields() {
		t.Row(fmt.Sprint(i+1), f.Name, f.Kind.String(), string(f.Section), f.Constraint(), fmt.Sprint(f.Default))
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
