package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitylab/trident/pkg/config"
	"github.com/gravitylab/trident/pkg/digest"
	"github.com/gravitylab/trident/pkg/display"
	"github.com/gravitylab/trident/pkg/errors"
	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/machine"
	"github.com/gravitylab/trident/pkg/polylock"
)

var statusCmd = &cobra.Command{
	Use:   "status <instance-key...>",
	Short: "Show whether each instance has a valid cached lock",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, keys []string) error {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	m := machine.New(cfg.Root)

	table := display.NewTable(display.StatusSchema...)
	for _, key := range keys {
		inst, err := instance.Load(m.ProfilePath(key))
		if err != nil {
			table.AddRow(key, "error", "-", "-")
			continue
		}
		store := polylock.New(inst.Home())
		_, valid := store.Read(digest.Digest(inst.Profile().Metadata))
		table.AddRow(key, "yes", fmt.Sprintf("%v", valid), "-")
	}
	table.Render(cmd.OutOrStdout())
	return nil
}
