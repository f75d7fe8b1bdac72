package indexer

import "errors"

// ErrCommitRejected marks a commit failure that is retried at the same height.
// Any other sink or source error restarts the loop.
var ErrCommitRejected = errors.New("block commit rejected")
