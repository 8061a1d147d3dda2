package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("reset wipes every experiment, win and collection; pass --yes to confirm")

func newResetCommand(options *rootOptions) *cobra.Command {
	var reseed, confirmed bool

	command := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data, optionally loading the sample set again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errResetNotConfirmed
			}
			return RunResetCommand(options, reseed)
		},
	}
	command.Flags().BoolVar(&reseed, "reseed", false, "insert the sample data after wiping")
	command.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm the reset")
	return command
}

func RunResetCommand(options *rootOptions, reseed bool) error {
	s, err := openStore(options)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.services.Reset.ResetAll(reseed); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}

	fmt.Fprintln(options.stdout, "All data has been reset.")
	if reseed {
		fmt.Fprintln(options.stdout, "Sample data loaded.")
	}
	return nil
}
