// Package cmd implements tridentctl's command-line interface: deploying
// instances against their profiles, and inspecting the resulting
// polylocks.
package cmd

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravitylab/trident/pkg/errors"
	"github.com/gravitylab/trident/pkg/verbose"
)

var exitFunc = os.Exit

var (
	rootFlag            string
	verboseFlag         bool
	maxResolveDepthFlag int
	forceFlag           bool
)

var rootCmd = &cobra.Command{
	Use:   "tridentctl",
	Short: "Deploy and inspect modded game instances",
	Long:  `tridentctl resolves a profile's declared content into a concrete, restorable instance.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
			verbose.SetLevel(verbose.LevelDebug)
		}
	},
}

// Execute runs the root command and exits with the error's mapped exit
// code: 0 success, 1 partial failure (some instances deployed, others
// failed), 2 complete failure, 3 configuration error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)

		var partial *errors.PartialSuccessError
		if stderrors.As(err, &partial) {
			code = errors.ExitPartialFailure
			verbose.Infof("exit %d: %d succeeded, %d failed", code, partial.Succeeded, partial.Failed)
		} else {
			verbose.Infof("exit %d: %v", code, err)
		}
		exitFunc(code)
	}
}

// ExecuteTest runs the root command without exiting the process, for use
// from tests.
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "trident root directory (instances/, storage/, cache/, repositories/)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable verbose debug output")
	rootCmd.PersistentFlags().IntVar(&maxResolveDepthFlag, "max-resolve-depth", 0, "override the resolve engine's max wave count (0 = use config default)")
	rootCmd.PersistentFlags().BoolVar(&forceFlag, "force", false, "bypass a valid cached lock and re-resolve")

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(statusCmd)
}
