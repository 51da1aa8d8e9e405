package cmd

import (
	"fmt"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/tools"
	"github.com/spf13/cobra"
)

// installCmd provisions a single tool.
var installCmd = &cobra.Command{
	Use:   "install <tool> [version]",
	Short: "Resolve and install a tool version into the cache",
	Long: `Resolve the version request for a tool, install the resolved version
into the local cache if it is not already there, and register the cache
directory on the executable search path.

With no version argument the request is empty, which defers to the
tool's version-pin file and falls back to the latest release.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := tools.Get(args[0])
		if err != nil {
			return err
		}

		request := ""
		if len(args) == 2 {
			request = args[1]
		}

		ag := agent.NewSystem()
		spec, dir, err := tools.NewProvisioner(ag).Provision(def, request, workDir)
		if err != nil {
			return err
		}
		if spec == nil {
			return nil
		}

		fmt.Printf("%s %s ready in %s\n", def.Name, spec.Resolved, dir)
		return nil
	},
}
