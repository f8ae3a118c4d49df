package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gravitylab/trident/pkg/config"
	"github.com/gravitylab/trident/pkg/digest"
	"github.com/gravitylab/trident/pkg/display"
	"github.com/gravitylab/trident/pkg/errors"
	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/machine"
	"github.com/gravitylab/trident/pkg/polylock"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <instance-key>",
	Short: "List the packages in an instance's current lock",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	key := args[0]
	m := machine.New(cfg.Root)
	inst, err := instance.Load(m.ProfilePath(key))
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	store := polylock.New(inst.Home())
	data, ok := store.Read(digest.Digest(inst.Profile().Metadata))
	if !ok {
		cmd.Printf("%s: no valid lock\n", key)
		return nil
	}

	table := display.NewTable(display.InspectSchema...)
	for _, pkg := range data.Packages {
		table.AddRow(pkg.ProjectID, pkg.VersionID, string(pkg.Kind), pkg.Author)
	}
	table.Render(cmd.OutOrStdout())
	return nil
}
