package network

import (
	"time"

	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
)

// MessageType identifies an observer message
type MessageType string

const (
	MsgHello MessageType = "hello" // Sent once on connect with the latest summary
	MsgField MessageType = "field" // Sent after every published rebuild
)

// Message is the JSON envelope sent to observers
type Message struct {
	Type    MessageType   `json:"type"`
	Summary *FieldSummary `json:"summary,omitempty"`
}

// FieldSummary describes one published flow field
type FieldSummary struct {
	Version uint64             `json:"version"`
	Tick    uint64             `json:"tick"`
	Goal    core.Point         `json:"goal"`
	Radius  int                `json:"radius"`
	Entries int                `json:"entries"`
	Reason  string             `json:"reason"`
	Time    time.Time          `json:"time"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Summarize builds a summary of a published field
func Summarize(f *navigation.FlowField, reason navigation.Reason, tick uint64) *FieldSummary {
	return &FieldSummary{
		Version: f.Version,
		Tick:    tick,
		Goal:    f.Goal,
		Radius:  f.Radius,
		Entries: f.Len(),
		Reason:  reason.String(),
		Time:    time.Now().UTC(),
	}
}
