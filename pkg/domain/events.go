package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPassStart EventType = "pass_start"
	EventPassEnd   EventType = "pass_end"
	EventFallback  EventType = "fallback"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Trace is the index of the trace within its document.
	Trace int `json:"trace"`
}

// PassEvent marks the start or the end of one trace's defaulting pass.
type PassEvent struct {
	EventBase
	Mode string `json:"mode,omitempty"`
	// Set on pass end only.
	Duration  time.Duration `json:"duration,omitempty"`
	Fallbacks int           `json:"fallbacks,omitempty"`
}

// FallbackEvent reports a caller value that was present but replaced.
type FallbackEvent struct {
	EventBase
	Path   string `json:"path"`
	Input  any    `json:"input,omitempty"`
	Output any    `json:"output,omitempty"`
	Reason string `json:"reason"`
}

// LifecycleHooks defines callbacks for engine observability. Hooks may be
// called from several goroutines when traces are resolved concurrently.
type LifecycleHooks struct {
	OnPassStart func(context.Context, *PassEvent)
	OnPassEnd   func(context.Context, *PassEvent)
	OnFallback  func(context.Context, *FallbackEvent)
}
