package coerce

// Reason classifies where a resolved value came from.
type Reason string

const (
	ReasonExplicit Reason = "explicit" // valid caller value
	ReasonTemplate Reason = "template" // caller value absent, template value used
	ReasonDefault  Reason = "default"  // caller value absent, default used
	ReasonAbsent   Reason = "absent"   // caller value absent, no default either
	ReasonInvalid  Reason = "invalid"  // caller value present but rejected
	ReasonUnknown  Reason = "unknown"  // path not described by the schema
)

// Event describes a single coerce call.
type Event struct {
	Path   string `json:"path"`
	Input  any    `json:"input,omitempty"`
	Output any    `json:"output,omitempty"`
	Reason Reason `json:"reason"`
}

// Observer receives one Event per coerce call.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Recorder collects events in call order. Not safe for concurrent use;
// each defaulting pass owns its own Recorder.
type Recorder struct {
	Events []Event
	Next   Observer
}

func (r *Recorder) Observe(ev Event) {
	r.Events = append(r.Events, ev)
	if r.Next != nil {
		r.Next.Observe(ev)
	}
}

// Filter returns the recorded events with the given reason.
func (r *Recorder) Filter(reason Reason) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Reason == reason {
			out = append(out, ev)
		}
	}
	return out
}
