package pipeline

import (
	"github.com/tillvoss/mindweave/pkg/document"
)

// =============================================================================
// Parse Stage
// =============================================================================

// Parse turns markdown source into a document tree.
// An input without a top-level heading yields an empty tree carrying a
// message; that is a valid result, not an error.
func Parse(opts Options) (*document.Tree, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	tree := document.Parse(opts.Source)

	if tree.IsEmpty() {
		opts.Logger.Debug("parsed empty document",
			"source", opts.SourceName,
			"message", tree.Message)
	} else {
		opts.Logger.Debug("parsed document",
			"source", opts.SourceName,
			"nodes", tree.NodeCount())
	}

	return tree, nil
}
