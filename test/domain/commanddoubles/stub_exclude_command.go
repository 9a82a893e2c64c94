//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// StubExcludeCommand is a stub implementation of commands.Exclude.
type StubExcludeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Changed          []string
	LastSettings     *entities.Settings
	LastOpts         commands.ExcludeOptions
}

var _ commands.Exclude = (*StubExcludeCommand)(nil)

func (s *StubExcludeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ExcludeOptions,
) ([]string, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Changed, s.ExecuteErr
}
