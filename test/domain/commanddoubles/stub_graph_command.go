//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// StubGraphCommand is a stub implementation of commands.Graph.
type StubGraphCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.GraphResult
	LastSettings     *entities.Settings
	LastOpts         commands.GraphOptions
}

var _ commands.Graph = (*StubGraphCommand)(nil)

func (s *StubGraphCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.GraphOptions,
) (*commands.GraphResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Result, nil
}
