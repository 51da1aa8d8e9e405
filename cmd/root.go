package cmd

import (
	"os"

	"github.com/elioetibr/tfprovision/pkg/agent"
	"github.com/spf13/cobra"
)

var (
	// Version information set from main
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	// Global flags
	verbose bool
	workDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tfprovision",
	Short: "Provision versioned infrastructure CLI tools",
	Long: `tfprovision resolves version requests for infrastructure command-line
tools, installs the resolved versions into a content-addressed local
cache and puts them on the executable search path.

Version requests may be an exact version ("1.9.8"), "latest", "skip",
or empty to defer to a version-pin file (for example .terraform-version)
discovered by walking up from the working directory.

Examples:
  tfprovision install terraform 1.9.8   # install an exact version
  tfprovision install terragrunt latest # discover and install the newest release
  tfprovision setup                     # provision every tool in .tfprovision.yml
  tfprovision detect terraform          # report the installed binary's version`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build-time variables.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", ".", "directory to resolve version-pin files from")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			os.Setenv(agent.EnvVerbose, "true")
		}
	}

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(versionCmd)
}
