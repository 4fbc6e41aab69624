package tui

import "time"

type msgPlan struct {
	names []string
}

type msgStart struct {
	spanID   string
	parentID string
	name     string
	at       time.Time
}

type msgLog struct {
	spanID string
	data   []byte
}

type msgComplete struct {
	spanID string
	at     time.Time
	err    error
}

// msgDone ends the program once the run has finished.
type msgDone struct{}
