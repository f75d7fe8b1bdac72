package uptime

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// memoryStore serializes every transaction behind one mutex.
type memoryStore struct {
	mu        sync.Mutex
	nextID    int64
	records   []model.UptimeRecord
	downtimes []model.DowntimeInterval
}

func (s *memoryStore) InTx(ctx context.Context, _ string, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, memoryTx{s})
}

func (s *memoryStore) ActiveRecordByHotkey(_ context.Context, hotkey string) (model.UptimeRecord, []model.DowntimeInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.Hotkey == hotkey && !rec.IsDeregistered {
			var out []model.DowntimeInterval
			for _, d := range s.downtimes {
				if d.RecordID == rec.ID {
					out = append(out, d)
				}
			}
			return rec, out, nil
		}
	}
	return model.UptimeRecord{}, nil, ErrNotFound
}

func (s *memoryStore) openIntervals(recordID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, d := range s.downtimes {
		if d.RecordID == recordID && d.End == nil {
			n++
		}
	}
	return n
}

type memoryTx struct{ s *memoryStore }

func (t memoryTx) ActiveRecord(_ context.Context, peerID string) (model.UptimeRecord, error) {
	for _, rec := range t.s.records {
		if rec.PeerID == peerID && !rec.IsDeregistered {
			return rec, nil
		}
	}
	return model.UptimeRecord{}, ErrNotFound
}

func (t memoryTx) CreateRecord(_ context.Context, rec model.UptimeRecord) (model.UptimeRecord, error) {
	t.s.nextID++
	rec.ID = t.s.nextID
	t.s.records = append(t.s.records, rec)
	return rec, nil
}

func (t memoryTx) Deregister(_ context.Context, recordID int64, at time.Time) error {
	for i := range t.s.records {
		if t.s.records[i].ID == recordID {
			t.s.records[i].IsDeregistered = true
			t.s.records[i].DeregisteredAt = &at
			return nil
		}
	}
	return ErrNotFound
}

func (t memoryTx) LatestDowntime(_ context.Context, recordID int64) (model.DowntimeInterval, error) {
	for i := len(t.s.downtimes) - 1; i >= 0; i-- {
		if t.s.downtimes[i].RecordID == recordID {
			return t.s.downtimes[i], nil
		}
	}
	return model.DowntimeInterval{}, ErrNotFound
}

func (t memoryTx) OpenDowntime(_ context.Context, recordID int64, start time.Time) error {
	t.s.nextID++
	t.s.downtimes = append(t.s.downtimes, model.DowntimeInterval{ID: t.s.nextID, RecordID: recordID, Start: start})
	return nil
}

func (t memoryTx) CloseDowntime(_ context.Context, recordID int64, end time.Time) error {
	for i := range t.s.downtimes {
		if t.s.downtimes[i].RecordID == recordID && t.s.downtimes[i].End == nil {
			t.s.downtimes[i].End = &end
		}
	}
	return nil
}
