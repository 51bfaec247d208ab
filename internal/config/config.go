/*
PURPOSE:
  Defines the run configuration and the command interpreter that builds it
  from process arguments.

REQUIREMENTS:
  User-specified:
  - grid_base_ref_miniapp.x [--batch <cycles-per-block>] <cycles> <task-file>
  - Existing invocation scripts depend on the exact usage line and exit codes.

  Implementation-discovered:
  - Arguments are consumed strictly left to right. The flag must come first
    and its value sits before <cycles>, so a generic flag parser cannot be used.
  - Integers are read like C's %i: decimal, 0x hex, leading-0 octal, 32-bit.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine

ERROR HANDLING:
  - *UsageError for a wrong argument count.
  - *ParseError naming the field for a bad integer.

IMPLEMENTATION RULES:
  - No filesystem access. The task path is taken verbatim.
  - Config is returned by value and never mutated afterwards.

USAGE:
  cfg, err := config.Parse(os.Args[1:])

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - The usage string is compared byte for byte by internal/cli golden tests.
*/

package config

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// BatchFlag enables block-wise replay. It is only recognised as the first argument.
	BatchFlag = "--batch"

	// DefaultCyclesPerBlock is used when BatchFlag is absent.
	DefaultCyclesPerBlock = 1

	// Usage is printed on a wrong argument count.
	Usage = "Usage: grid_base_ref_miniapp.x [--batch <cycles-per-block>] <cycles> <task-file>"

	// FieldCyclesPerBlock names the block size in ParseError diagnostics.
	FieldCyclesPerBlock = "cycles per block"
	// FieldCycles names the cycle count in ParseError diagnostics.
	FieldCycles = "cycles"
)

// Config represents one replay invocation.
type Config struct {
	Batch          bool
	CyclesPerBlock int
	Cycles         int
	TaskFile       string
}

// UsageError reports a positional argument count that does not match the
// invocation form.
type UsageError struct {
	Got  int
	Want int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected %d positional arguments, got %d", e.Want, e.Got)
}

// ParseError reports a numeric argument that is not a valid integer.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return "Could not parse " + e.Field
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotPositive = errors.New("must be at least 1")

// Parse builds a Config from the process arguments, program name excluded.
func Parse(args []string) (Config, error) {
	cfg := Config{CyclesPerBlock: DefaultCyclesPerBlock}

	required := 2
	if len(args) > 0 && args[0] == BatchFlag {
		args = args[1:]
		cfg.Batch = true
		required++
	}

	// All optional args have been consumed.
	if len(args) != required {
		return Config{}, &UsageError{Got: len(args), Want: required}
	}

	if cfg.Batch {
		n, err := parseInt(args[0])
		if err == nil && n < 1 {
			err = errNotPositive
		}
		if err != nil {
			return Config{}, &ParseError{Field: FieldCyclesPerBlock, Value: args[0], Err: err}
		}
		cfg.CyclesPerBlock = n
		args = args[1:]
	}

	cycles, err := parseInt(args[0])
	if err != nil {
		return Config{}, &ParseError{Field: FieldCycles, Value: args[0], Err: err}
	}
	cfg.Cycles = cycles
	cfg.TaskFile = args[1]

	return cfg, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
