package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"calib/internal/config"
	"calib/internal/document"
)

func TestExitCodeForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("mystery"), ExitGeneralError},
		{fmt.Errorf("%w: x", errUsage), ExitUsageError},
		{fmt.Errorf("load: %w", config.ErrInvalid), ExitUsageError},
		{config.ErrConfigNotFound, ExitUsageError},
		{fmt.Errorf("%w: %w", errOutput, errors.New("disk full")), ExitOutputError},
		{fmt.Errorf("%w: a.txt", document.ErrNotFound), ExitDocNotFound},
		{fmt.Errorf("%w: a.txt", document.ErrUnreadable), ExitDocUnreadable},
		{fmt.Errorf("%w: a.txt", document.ErrInvalidEncoding), ExitInvalidEncoding},
		{fmt.Errorf("score: %w", context.Canceled), ExitInterrupted},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExitCodeForError(c.err), "%v", c.err)
	}
}
