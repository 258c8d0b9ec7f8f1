package commands

import (
	"go.uber.org/zap"

	"github.com/embedhead-io/tree-cli/internal/types"
)

// TreeBuilder renders directory trees using configured walk options.
type TreeBuilder struct {
	Options types.WalkOptions
	Logger  *zap.Logger
}
