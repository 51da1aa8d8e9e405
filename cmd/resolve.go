package cmd

import (
	"fmt"

	"github.com/elioetibr/tfprovision/pkg/resolve"
	"github.com/elioetibr/tfprovision/pkg/tools"
	"github.com/spf13/cobra"
)

// resolveCmd resolves a version request without installing anything.
var resolveCmd = &cobra.Command{
	Use:   "resolve <tool> [version]",
	Short: "Resolve a version request to a concrete version",
	Long: `Resolve a version request to the concrete version that install would
use, without downloading anything. The output shows the resolved
version and its provenance (input, file, or latest).`,
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

		resolver := &resolve.Resolver{
			Tool:     def.Name,
			FileName: def.PinFile,
			Latest:   def.Latest,
		}

		spec, err := resolver.Resolve(request, workDir)
		if err != nil {
			return err
		}
		if spec == nil {
			fmt.Printf("%s: skip\n", def.Name)
			return nil
		}

		fmt.Printf("%s: %s (source: %s)\n", def.Name, spec.Resolved, spec.Source)
		return nil
	},
}
