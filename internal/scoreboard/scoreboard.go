// Package scoreboard keeps the exponential moving average of peer rewards in bbolt.
package scoreboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const DefaultAlpha = 0.1

var bucketScores = []byte("scores_by_hotkey")

// Scoreboard is safe for concurrent use; bbolt serializes writers.
type Scoreboard struct {
	db    *bolt.DB
	alpha float64
}

// Open opens or creates the scoreboard at path.
func Open(path string, alpha float64) (*Scoreboard, error) {
	if path == "" {
		return nil, errors.New("scoreboard path is required")
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("scoreboard alpha %v out of (0,1]", alpha)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketScores); err != nil {
			return fmt.Errorf("create bucket %s: %w", string(bucketScores), err)
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Scoreboard{db: db, alpha: alpha}, nil
}

func (s *Scoreboard) Close() error {
	return s.db.Close()
}

// Update folds the round rewards into the averages in one transaction and
// returns the new averages of the updated hotkeys. Excluded results are skipped.
func (s *Scoreboard) Update(results []model.RewardResult) (map[string]float64, error) {
	out := make(map[string]float64, len(results))
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScores)
		for _, r := range results {
			if r.Exclude {
				continue
			}
			prev, _ := decode(b.Get([]byte(r.Hotkey)))
			next := s.alpha*sanitize(r.Score) + (1-s.alpha)*prev
			if err := b.Put([]byte(r.Hotkey), encode(sanitize(next))); err != nil {
				return fmt.Errorf("put score of %s: %w", r.Hotkey, err)
			}
			out[r.Hotkey] = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Score returns the average of hotkey.
func (s *Scoreboard) Score(hotkey string) (float64, bool, error) {
	var (
		score float64
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		score, found = decode(tx.Bucket(bucketScores).Get([]byte(hotkey)))
		return nil
	})
	return score, found, err
}

// All returns every stored average.
func (s *Scoreboard) All() (map[string]float64, error) {
	out := make(map[string]float64)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketScores).ForEach(func(k, v []byte) error {
			score, _ := decode(v)
			out[string(k)] = score
			return nil
		})
	})
	return out, err
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func encode(v float64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}

func decode(raw []byte) (float64, bool) {
	if len(raw) != 8 {
		return 0, false
	}
	return sanitize(math.Float64frombits(binary.BigEndian.Uint64(raw))), true
}
