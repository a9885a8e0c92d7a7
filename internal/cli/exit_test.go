package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptq/promptq/internal/config"
	"github.com/promptq/promptq/internal/profile"
	"github.com/promptq/promptq/internal/util"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, util.ExitOK, ExitCode(nil))
	assert.Equal(t, util.ExitInvalidInput, ExitCode(config.ErrMissingToken))
	assert.Equal(t, util.ExitInvalidInput, ExitCode(ErrMissingModel))
	assert.Equal(t, util.ExitInvalidInput, ExitCode(ErrInvalidMaxTokens))
	assert.Equal(t, util.ExitInvalidInput, ExitCode(fmt.Errorf("%w %q", profile.ErrUnknownProfile, "fast")))
	assert.Equal(t, util.ExitRuntimeError, ExitCode(errors.New("error reading file /tmp/prompt.txt")))
}
