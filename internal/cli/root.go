/*
PURPOSE:
  Defines the root Cobra command for the grid replay miniapp.
  Hands the raw arguments to the command interpreter and the replay runner.

REQUIREMENTS:
  User-specified:
  - grid_base_ref_miniapp.x [--batch <cycles-per-block>] <cycles> <task-file>
  - No other flags, subcommands, environment variables or config files.

  Implementation-discovered:
  - Flag parsing is disabled so --batch, -h and negative numbers reach
    config.Parse untouched.
  - Cobra's own usage and error printing is silenced; diagnostics are
    written by report() in the miniapp's exact wording.
  - Cobra intercepts __complete/__completeNoDesc even with flag parsing
    disabled. executeCommand hands them to RunE like any other token.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/grid-miniapp/main.go
  - Calls: run() in internal/cli/run.go

ERROR HANDLING:
  - Execute maps the returned error to an exit code for main.go.

USAGE:
  os.Exit(cli.Execute())

RELATED FILES:
  - internal/cli/run.go
  - internal/cli/exit.go
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grid-replay/internal/engine"
)

// NewRootCommand builds the miniapp command around the given replay engine.
func NewRootCommand(r engine.Replayer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid_base_ref_miniapp.x [--batch <cycles-per-block>] <cycles> <task-file>",
		Short: "Replay collocation task files and check them against their reference",
		Long: `Replays a captured collocation task <cycles> times and compares the
accumulated grid with the task's reference. The run fails when the maximal
difference exceeds 1e-12 * <cycles>.

With --batch the cycles are grouped into blocks of <cycles-per-block>.

Exit codes:
  0 - Maximal difference within tolerance
  1 - Usage or argument parse error
  2 - Maximal difference is too large
  3 - Task file could not be replayed`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(args, r)
			if err != nil {
				report(cmd.ErrOrStderr(), err)
			}
			return err
		},
	}

	return cmd
}

// Execute runs the miniapp on the process arguments with the task file
// replay engine and returns the process exit code.
func Execute() int {
	return ExitCode(executeCommand(NewRootCommand(engine.NewTaskReplayer()), os.Args[1:]))
}

// executeCommand runs cmd on args. cobra routes its hidden shell completion
// commands before RunE is reached, so those tokens go straight to RunE.
func executeCommand(cmd *cobra.Command, args []string) error {
	if isCompletionRequest(args) {
		return cmd.RunE(cmd, args)
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func isCompletionRequest(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd
}
