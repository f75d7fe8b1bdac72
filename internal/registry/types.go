package registry

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// CommitmentStore is the key value commitment layer addressed by hotkey.
	CommitmentStore interface {
		// Commitments returns the stored strings for hotkeys; absent keys are omitted.
		Commitments(ctx context.Context, hotkeys []string) (map[string]string, error)
		SetCommitment(ctx context.Context, hotkey, value string) error
	}
)
