package cli

import (
	"errors"

	"github.com/promptq/promptq/internal/config"
	"github.com/promptq/promptq/internal/profile"
	"github.com/promptq/promptq/internal/util"
)

// ExitCode maps a command error to a process exit code. Invalid
// parameters and configuration map to ExitInvalidInput; everything else
// that reaches main is a runtime failure.
func ExitCode(err error) int {
	if err == nil {
		return util.ExitOK
	}
	switch {
	case errors.Is(err, config.ErrMissingToken),
		errors.Is(err, ErrMissingModel),
		errors.Is(err, ErrInvalidMaxTokens),
		errors.Is(err, profile.ErrUnknownProfile):
		return util.ExitInvalidInput
	}
	return util.ExitRuntimeError
}
