/*
PURPOSE:
  Executes one miniapp invocation: interpret arguments, replay, judge.

ARCHITECTURE INTEGRATION:
  - Called by: the root command's RunE
  - Calls: internal/config.Parse -> internal/engine.Run

ERROR HANDLING:
  - Parse errors stop before the engine is called.
  - Engine and tolerance errors are returned unchanged.

IMPLEMENTATION RULES:
  - Logic: Parse -> Run. Nothing is retried.
*/

package cli

import (
	"github.com/daryltucker/grid-replay/internal/config"
	"github.com/daryltucker/grid-replay/internal/engine"
)

func run(args []string, r engine.Replayer) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	_, err = engine.Run(cfg, r)
	return err
}
