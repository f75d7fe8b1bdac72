package model

import "time"

// UptimeRecord is the persisted identity of a peer slot owned by a hotkey.
type UptimeRecord struct {
	ID             int64
	PeerID         string
	Hotkey         string
	UID            uint16
	UptimeStart    time.Time
	IsDeregistered bool
	DeregisteredAt *time.Time
}

// DowntimeInterval is a period the peer was down. A nil End means it is still down.
type DowntimeInterval struct {
	ID       int64
	RecordID int64
	Start    time.Time
	End      *time.Time
}

// UptimeScores are the trailing window ratios of a hotkey.
type UptimeScores struct {
	Daily   float64
	Weekly  float64
	Monthly float64
	Average float64
}
