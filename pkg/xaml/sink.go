package xaml

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Sink consumes a structural event stream. Implementations either build
// an object graph or stream text; the producer does not care which.
//
// A well-formed stream is balanced: every StartObject and GetObject is
// closed by EndObject, every StartMember by EndMember. Namespace
// declarations precede the StartObject they apply to.
type Sink interface {
	Namespace(prefix, uri string) error
	StartObject(t *Type) error
	GetObject() error
	StartMember(m *Member) error
	EndMember() error
	Value(v string) error
	EndObject() error
}

// EventKind enumerates the structural events
type EventKind int

const (
	EventNone EventKind = iota
	EventNamespace
	EventStartObject
	EventGetObject
	EventStartMember
	EventEndMember
	EventValue
	EventEndObject
)

var eventKindNames = map[EventKind]string{
	EventNone:        "None",
	EventNamespace:   "NamespaceDeclaration",
	EventStartObject: "StartObject",
	EventGetObject:   "GetObject",
	EventStartMember: "StartMember",
	EventEndMember:   "EndMember",
	EventValue:       "Value",
	EventEndObject:   "EndObject",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one recorded structural event
type Event struct {
	Kind   EventKind
	Type   *Type
	Member *Member
	Value  string
	Prefix string
	URI    string
}

// String renders the event the way the trace prints it, e.g.
// "StartObject Paragraph" or "Value hello"
func (e Event) String() string {
	switch e.Kind {
	case EventNamespace:
		return fmt.Sprintf("%s %s=%s", e.Kind, e.Prefix, e.URI)
	case EventStartObject:
		return fmt.Sprintf("%s %s", e.Kind, e.Type.QualifiedName())
	case EventStartMember:
		return fmt.Sprintf("%s %s", e.Kind, e.Member.Name)
	case EventValue:
		return fmt.Sprintf("%s %s", e.Kind, e.Value)
	}
	return e.Kind.String()
}

// Emit sends the event to a sink
func (e Event) Emit(s Sink) error {
	switch e.Kind {
	case EventNamespace:
		return s.Namespace(e.Prefix, e.URI)
	case EventStartObject:
		return s.StartObject(e.Type)
	case EventGetObject:
		return s.GetObject()
	case EventStartMember:
		return s.StartMember(e.Member)
	case EventEndMember:
		return s.EndMember()
	case EventValue:
		return s.Value(e.Value)
	case EventEndObject:
		return s.EndObject()
	}
	return errors.Newf(errors.ErrStructural, "unrecognized event kind %s", e.Kind)
}

// Recorder is a Sink that keeps every event in order
type Recorder struct {
	Events []Event
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Namespace(prefix, uri string) error {
	return r.add(Event{Kind: EventNamespace, Prefix: prefix, URI: uri})
}

func (r *Recorder) StartObject(t *Type) error {
	return r.add(Event{Kind: EventStartObject, Type: t})
}

func (r *Recorder) GetObject() error { return r.add(Event{Kind: EventGetObject}) }

func (r *Recorder) StartMember(m *Member) error {
	return r.add(Event{Kind: EventStartMember, Member: m})
}

func (r *Recorder) EndMember() error { return r.add(Event{Kind: EventEndMember}) }

func (r *Recorder) Value(v string) error {
	return r.add(Event{Kind: EventValue, Value: v})
}

func (r *Recorder) EndObject() error { return r.add(Event{Kind: EventEndObject}) }

// Replay sends the recorded events to another sink
func (r *Recorder) Replay(s Sink) error {
	for _, e := range r.Events {
		if err := e.Emit(s); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns one line per event, indented two spaces per open object or
// member
func (r *Recorder) Lines() []string {
	lines := make([]string, 0, len(r.Events))
	depth := 0
	for _, e := range r.Events {
		switch e.Kind {
		case EventEndObject, EventEndMember:
			if depth > 0 {
				depth--
			}
		}
		lines = append(lines, strings.Repeat("  ", depth)+e.String())
		switch e.Kind {
		case EventStartObject, EventGetObject, EventStartMember:
			depth++
		}
	}
	return lines
}

// String is the indented event trace
func (r *Recorder) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Depth returns the object nesting depth after the recorded events. A
// complete document leaves it at zero.
func (r *Recorder) Depth() int {
	depth := 0
	for _, e := range r.Events {
		switch e.Kind {
		case EventStartObject, EventGetObject:
			depth++
		case EventEndObject:
			depth--
		}
	}
	return depth
}

// Discard is a Sink that drops every event
var Discard Sink = discard{}

type discard struct{}

func (discard) Namespace(string, string) error { return nil }
func (discard) StartObject(*Type) error        { return nil }
func (discard) GetObject() error               { return nil }
func (discard) StartMember(*Member) error      { return nil }
func (discard) EndMember() error               { return nil }
func (discard) Value(string) error             { return nil }
func (discard) EndObject() error               { return nil }

// Tee duplicates events into several sinks, stopping at the first error
func Tee(sinks ...Sink) Sink { return tee(sinks) }

type tee []Sink

func (t tee) each(fn func(Sink) error) error {
	for _, s := range t {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Namespace(prefix, uri string) error {
	return t.each(func(s Sink) error { return s.Namespace(prefix, uri) })
}
func (t tee) StartObject(ty *Type) error {
	return t.each(func(s Sink) error { return s.StartObject(ty) })
}
func (t tee) GetObject() error { return t.each(func(s Sink) error { return s.GetObject() }) }
func (t tee) StartMember(m *Member) error {
	return t.each(func(s Sink) error { return s.StartMember(m) })
}
func (t tee) EndMember() error        { return t.each(func(s Sink) error { return s.EndMember() }) }
func (t tee) Value(v string) error    { return t.each(func(s Sink) error { return s.Value(v) }) }
func (t tee) EndObject() error        { return t.each(func(s Sink) error { return s.EndObject() }) }
