package indexer

import "time"

const (
	defaultLag            uint64 = 6
	defaultFloodThreshold        = 500
	defaultFloodDelay            = 1 * time.Second
	defaultCommitBackoff         = 30 * time.Second
	defaultRestartDelay          = 60 * time.Second
	defaultPollInterval          = 10 * time.Second
	defaultCommitTimeout         = 2 * time.Minute
	defaultFloor          uint64 = 1
)
