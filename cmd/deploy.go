package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitylab/trident/pkg/config"
	"github.com/gravitylab/trident/pkg/deploy"
	"github.com/gravitylab/trident/pkg/errors"
	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/machine"
	"github.com/gravitylab/trident/pkg/resolve"
	"github.com/gravitylab/trident/pkg/verbose"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <instance-key...>",
	Short: "Resolve and restore one or more instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDeploy,
}

func runDeploy(cmd *cobra.Command, keys []string) error {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	cfg = config.ApplyFlags(cfg, maxResolveDepthFlag, forceFlag)

	lookup, err := loadRepositories(cfg.Root)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	m := machine.New(cfg.Root)

	var succeeded, failed int
	var failures []error

	for _, key := range keys {
		if err := deployOne(cmd.Context(), m, key, cfg, lookup); err != nil {
			failed++
			failures = append(failures, fmt.Errorf("%s: %w", key, err))
			verbose.Infof("deploy %s: failed: %v", key, err)
			continue
		}
		succeeded++
		fmt.Fprintf(cmd.OutOrStdout(), "%s: restored\n", key)
	}

	switch {
	case failed == 0:
		return nil
	case succeeded == 0:
		return errors.NewExitError(errors.ExitFailure, failures[0])
	default:
		return errors.NewPartialSuccessError(succeeded, failed, failures)
	}
}

func deployOne(ctx context.Context, m *machine.Machine, key string, cfg *config.Config, lookup resolve.Lookup) error {
	inst, err := instance.Load(m.ProfilePath(key))
	if err != nil {
		return err
	}

	engine := deploy.NewEngine(inst, lookup,
		deploy.WithForce(cfg.Force),
		deploy.WithMaxResolveDepth(cfg.MaxResolveDepth),
	)

	for {
		stage, ok := engine.Next()
		if !ok {
			return nil
		}
		if err := performStage(ctx, stage); err != nil {
			return err
		}
	}
}

// performStage drives one yielded Stage to completion. Resolve's
// sub-handles are performed best-effort: a single failed dependency does
// not abort the whole wave, matching the resolve engine's own contract
// that a failed handle simply contributes nothing to the closure.
func performStage(ctx context.Context, stage *deploy.Stage) error {
	switch stage.Kind {
	case deploy.StageCheck:
		stage.Check.Perform()
		return nil
	case deploy.StageResolve:
		for {
			h, more := stage.Resolve.Next()
			if !more {
				return nil
			}
			if _, err := h.Perform(ctx); err != nil {
				verbose.Debugf("resolve %s: %v", h.Task(), err)
			}
		}
	case deploy.StageInstall:
		return stage.Install.Perform(ctx)
	case deploy.StageDownload:
		return stage.Download.Perform(ctx)
	case deploy.StageRestore:
		return stage.Restore.Perform(ctx)
	default:
		return nil
	}
}
