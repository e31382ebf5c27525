package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch NAME...",
	Short: "Fetch creatures from the PokeAPI into the relational store",
	Long:  "Fetch creatures from the PokeAPI into the relational store.\n\nCounters and generated teams only consider stored creatures, so fetching warms that pool.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, names []string) error {
		b, err := openBackends(cmd.Context(), rootOpts)
		if err != nil {
			return err
		}
		defer b.Close()

		failed := 0
		for _, name := range names {
			c, err := b.creatures.ByName(cmd.Context(), name)
			if err != nil {
				slog.Error("fetching creature", slog.String("name", name), slog.Any("error", err))
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", c.ID, c.Name)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d creatures could not be fetched", failed, len(names))
		}
		return nil
	},
}
