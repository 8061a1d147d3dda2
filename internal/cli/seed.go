package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample data unless it was inserted before",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(options)
			if err != nil {
				return err
			}
			defer s.Close()

			inserted, err := s.services.Seed.SeedIfFirstLaunch()
			if err != nil {
				return fmt.Errorf("seed sample data: %w", err)
			}
			if inserted {
				fmt.Fprintln(options.stdout, "Sample data inserted.")
			} else {
				fmt.Fprintln(options.stdout, "Sample data was already inserted; nothing to do.")
			}
			return nil
		},
	}
}
