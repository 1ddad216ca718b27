package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the restrack release version.
const Version = "0.1.0"

const modulePath = "github.com/brennanma/restrack"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the restrack version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonMode {
				out, err := json.Marshal(map[string]string{
					"version": Version,
					"module":  modulePath,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restrack v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
