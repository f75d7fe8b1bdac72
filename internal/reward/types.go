package reward

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Uptime reads the trailing uptime of a hotkey.
	Uptime interface {
		UptimeScores(ctx context.Context, hotkey string) (model.UptimeScores, error)
	}
	// Scorer turns the signals of a peer that passed every gate into a score in [0,1].
	Scorer interface {
		Score(in ScoreInput) float64
	}
)
