package cmd

import (
	"fmt"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/tools"
	"github.com/spf13/cobra"
)

// detectCmd probes an installed tool for its self-reported version.
var detectCmd = &cobra.Command{
	Use:   "detect <tool>",
	Short: "Report the installed binary's self-reported version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := tools.Get(args[0])
		if err != nil {
			return err
		}

		v, err := tools.NewProvisioner(agent.NewSystem()).InstalledVersion(def)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", def.Name, v)
		return nil
	},
}
