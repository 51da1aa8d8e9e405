package cmd

import (
	"fmt"
	"sort"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/elioetibr/tfprovision/pkg/config"
	"github.com/elioetibr/tfprovision/pkg/tools"
	"github.com/spf13/cobra"
)

// setupCmd provisions every tool declared in the project configuration.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision all tools from the project configuration",
	Long: `Read the project configuration (.tfprovision.yml, .tfprovision.yaml,
.tfprovision.json5 or .tfprovision.json) and provision every declared
tool. Each entry maps a tool name to a version request interpreted the
same way as the install command's version argument.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(workDir)
		if err != nil {
			return err
		}

		ag := agent.NewSystem()
		provisioner := tools.NewProvisioner(ag)

		// Stable order so runs are reproducible.
		names := make([]string, 0, len(cfg.Tools))
		for name := range cfg.Tools {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def, err := tools.Get(name)
			if err != nil {
				return err
			}

			spec, dir, err := provisioner.Provision(def, cfg.Tools[name], workDir)
			if err != nil {
				return fmt.Errorf("failed to provision %s: %w", name, err)
			}
			if spec == nil {
				continue
			}

			fmt.Printf("%s %s ready in %s\n", name, spec.Resolved, dir)
		}

		return nil
	},
}
