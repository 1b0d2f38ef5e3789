package render

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// State is the writer's position in its small state machine
type State int

const (
	// StateIdle has no buffered text and no deferred collection on top
	StateIdle State = iota
	// StateCollectingText has characters waiting for a flush
	StateCollectingText
	// StateMemberPending has a declared collection that nothing has been
	// written to yet
	StateMemberPending
)

func (s State) String() string {
	switch s {
	case StateCollectingText:
		return "CollectingText"
	case StateMemberPending:
		return "MemberPending"
	}
	return "Idle"
}

type frameKind int

const (
	frameObject frameKind = iota
	// frameMember is a member whose StartMember has been emitted. It holds
	// one value or object, or several for directive collections.
	frameMember
	// frameCollection is a collection member bound through GetObject and
	// x:Items. It is pending until the first child is written.
	frameCollection
)

type frame struct {
	kind    frameKind
	typ     *xaml.Type
	member  *xaml.Member
	pending bool
	filled  bool
	// inline objects sit in a collection and are not blocks
	inline bool
}

// Writer turns begin/end calls into a balanced event stream.
//
// It owns the output context stack, defers collection openings until a
// child is written, and accumulates text between structural events. A
// Writer serves exactly one render.
type Writer struct {
	sink   xaml.Sink
	schema *xaml.Schema
	styles styles.Resolver

	frames []*frame
	text   *accumulator
	mode   TextMode

	run     *xaml.Type
	runText *xaml.Member

	// err is a sticky sink failure; structural errors leave the writer usable
	err error
	log zerolog.Logger
}

// NewWriter returns a writer emitting into sink. The schema must define Run
// with a Text member, which carries flushed text.
func NewWriter(sink xaml.Sink, schema *xaml.Schema, resolver styles.Resolver, log zerolog.Logger) (*Writer, error) {
	run, err := schema.Type(xaml.TypeRun)
	if err != nil {
		return nil, err
	}
	runText, err := run.Member("Text")
	if err != nil {
		return nil, err
	}
	return &Writer{
		sink:    sink,
		schema:  schema,
		styles:  resolver,
		text:    newAccumulator(),
		run:     run,
		runText: runText,
		log:     log,
	}, nil
}

// State reports the current state machine position
func (w *Writer) State() State {
	if w.text.active() {
		return StateCollectingText
	}
	if f := w.top(); f != nil && f.kind == frameCollection && f.pending {
		return StateMemberPending
	}
	return StateIdle
}

// Depth is the number of open objects
func (w *Writer) Depth() int {
	n := 0
	for _, f := range w.frames {
		if f.kind == frameObject {
			n++
		}
	}
	return n
}

// Mode returns the current text mode
func (w *Writer) Mode() TextMode { return w.mode }

// Preserve switches to preserve mode until the returned func is called
func (w *Writer) Preserve() (restore func()) {
	prev := w.mode
	w.mode = Preserve
	return func() { w.mode = prev }
}

// InlineContext reports whether text written now would land in an inline
// collection
func (w *Writer) InlineContext() bool {
	f := w.top()
	return f != nil && f.kind == frameCollection && f.member.Name == "Inlines"
}

func (w *Writer) top() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

func structural(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrStructural, format, args...)
}

// emit forwards one event to the sink. A sink failure is sticky.
func (w *Writer) emit(e xaml.Event) error {
	if w.err != nil {
		return w.err
	}
	w.log.Trace().Str("event", e.String()).Int("depth", len(w.frames)).Msg("emit")
	if err := e.Emit(w.sink); err != nil {
		w.err = errors.Wrap(err, errors.ErrSink, "sink rejected event").
			WithDetail("event", e.String())
		return w.err
	}
	return nil
}

func (w *Writer) emitAll(events ...xaml.Event) error {
	for _, e := range events {
		if err := w.emit(e); err != nil {
			return err
		}
	}
	return nil
}

// materialize opens a pending collection: StartMember, GetObject, x:Items
func (w *Writer) materialize(f *frame) error {
	if !f.pending {
		return nil
	}
	f.pending = false
	return w.emitAll(
		xaml.Event{Kind: xaml.EventStartMember, Member: f.member},
		xaml.Event{Kind: xaml.EventGetObject},
		xaml.Event{Kind: xaml.EventStartMember, Member: xaml.Items()},
	)
}

// flush writes buffered text as a Run into the collection on top
func (w *Writer) flush() error {
	if !w.text.active() {
		return nil
	}
	f := w.top()
	if f == nil || f.kind != frameCollection {
		return structural("buffered text has no collection to flush into")
	}
	text := w.text.take()
	if err := w.materialize(f); err != nil {
		return err
	}
	return w.emitAll(
		xaml.Event{Kind: xaml.EventStartObject, Type: w.run},
		xaml.Event{Kind: xaml.EventStartMember, Member: w.runText},
		xaml.Event{Kind: xaml.EventValue, Value: text},
		xaml.Event{Kind: xaml.EventEndMember},
		xaml.Event{Kind: xaml.EventEndObject},
	)
}

// acquire pushes f and returns the scope that will release it
func (w *Writer) acquire(f *frame) *Scope {
	w.frames = append(w.frames, f)
	return &Scope{w: w, frame: f, index: len(w.frames) - 1}
}

// Namespace declares a prefix for the next object
func (w *Writer) Namespace(prefix, uri string) error {
	if err := w.flush(); err != nil {
		return err
	}
	return w.emit(xaml.Event{Kind: xaml.EventNamespace, Prefix: prefix, URI: uri})
}

// BeginObject opens an object of the named type. Buffered text is flushed
// first so it never straddles the object boundary.
func (w *Writer) BeginObject(typeName string) (*Scope, error) {
	t, err := w.schema.Type(typeName)
	if err != nil {
		return nil, err
	}

	parent := w.top()
	if parent != nil {
		switch {
		case parent.kind == frameObject:
			return nil, structural("object %s started directly inside %s without a member", t.QualifiedName(), parent.typ.QualifiedName())
		case parent.kind == frameMember && parent.filled && !parent.member.Directive:
			return nil, structural("member %s already has a value", parent.member.Name)
		}
	}

	inline := parent != nil && parent.kind == frameCollection && !t.Block && !t.LineBreak
	if inline {
		w.text.openInline()
	}
	if err := w.flush(); err != nil {
		return nil, err
	}
	if parent != nil && parent.kind == frameCollection {
		if err := w.materialize(parent); err != nil {
			return nil, err
		}
	}
	if t.Block || t.LineBreak {
		w.text.boundary()
	}
	if err := w.emit(xaml.Event{Kind: xaml.EventStartObject, Type: t}); err != nil {
		return nil, err
	}
	if parent != nil {
		parent.filled = true
	}
	return w.acquire(&frame{kind: frameObject, typ: t, inline: inline}), nil
}

func (w *Writer) memberOnTop(name string) (*xaml.Member, error) {
	f := w.top()
	if f == nil {
		return nil, structural("member %s opened with no object", name)
	}
	if f.kind != frameObject {
		return nil, structural("member %s opened while %s is active", name, f.member.Name)
	}
	return f.typ.Member(name)
}

// BeginMember opens a member and emits StartMember right away. Use
// BeginCollection for collection members of ordinary types.
func (w *Writer) BeginMember(name string) (*Scope, error) {
	m, err := w.memberOnTop(name)
	if err != nil {
		return nil, err
	}
	if m.Collection && !m.Directive {
		return nil, structural("member %s is a collection", name)
	}
	if err := w.emit(xaml.Event{Kind: xaml.EventStartMember, Member: m}); err != nil {
		return nil, err
	}
	return w.acquire(&frame{kind: frameMember, member: m}), nil
}

// BeginCollection declares a collection member. Nothing is emitted until
// the first child is written; a collection that stays empty leaves no trace.
func (w *Writer) BeginCollection(name string) (*Scope, error) {
	m, err := w.memberOnTop(name)
	if err != nil {
		return nil, err
	}
	if !m.Collection || m.Directive {
		return nil, structural("member %s is not a collection", name)
	}
	return w.acquire(&frame{kind: frameCollection, member: m, pending: true}), nil
}

// WriteValue writes a scalar into the open member
func (w *Writer) WriteValue(v string) error {
	f := w.top()
	if f == nil || f.kind != frameMember {
		return structural("value %q written outside a member", v)
	}
	if f.filled && !f.member.Directive {
		return structural("member %s already has a value", f.member.Name)
	}
	if err := w.emit(xaml.Event{Kind: xaml.EventValue, Value: v}); err != nil {
		return err
	}
	f.filled = true
	return nil
}

// WriteMember opens name, writes value and closes it. A nil value writes
// nothing at all.
func (w *Writer) WriteMember(name string, value interface{}) (err error) {
	if value == nil {
		return nil
	}
	s, err := w.BeginMember(name)
	if err != nil {
		return err
	}
	defer s.End(&err)
	return w.WriteValue(formatValue(value))
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// WriteText adds text to the current run. Text is only valid inside a
// collection.
func (w *Writer) WriteText(s string) error {
	f := w.top()
	if f == nil || f.kind != frameCollection {
		return structural("text written outside a collection")
	}
	w.text.write(s, w.mode)
	return nil
}

// WriteStaticMember writes member = {x:Static symbol}
func (w *Writer) WriteStaticMember(member, symbol string) (err error) {
	m, err := w.BeginMember(member)
	if err != nil {
		return err
	}
	defer m.End(&err)
	return w.writeStatic(symbol)
}

func (w *Writer) writeStatic(symbol string) (err error) {
	obj, err := w.BeginObject(xaml.TypeStatic)
	if err != nil {
		return err
	}
	defer obj.End(&err)

	args, err := w.BeginMember(xaml.MemberPositional)
	if err != nil {
		return err
	}
	defer args.End(&err)
	return w.WriteValue(symbol)
}

// WriteStyleReference writes member = {StaticResource {x:Static key}}. An
// empty member name targets Style.
func (w *Writer) WriteStyleReference(member string, key styles.Key) (err error) {
	if member == "" {
		member = "Style"
	}
	m, err := w.BeginMember(member)
	if err != nil {
		return err
	}
	defer m.End(&err)

	res, err := w.BeginObject(xaml.TypeStaticResource)
	if err != nil {
		return err
	}
	defer res.End(&err)

	args, err := w.BeginMember(xaml.MemberPositional)
	if err != nil {
		return err
	}
	defer args.End(&err)
	return w.writeStatic(w.styles.Symbol(key))
}

// release closes the top frame
func (w *Writer) release() error {
	f := w.top()
	var err error
	switch f.kind {
	case frameCollection:
		err = w.flush()
		if !f.pending {
			if e := w.emitAll(
				xaml.Event{Kind: xaml.EventEndMember},
				xaml.Event{Kind: xaml.EventEndObject},
				xaml.Event{Kind: xaml.EventEndMember},
			); err == nil {
				err = e
			}
		}
	case frameMember:
		err = w.emit(xaml.Event{Kind: xaml.EventEndMember})
	case frameObject:
		err = w.emit(xaml.Event{Kind: xaml.EventEndObject})
		switch {
		case f.typ.Block || f.typ.LineBreak:
			w.text.boundary()
		case f.inline:
			w.text.closeInline()
		}
	}
	w.frames = w.frames[:len(w.frames)-1]
	return err
}

// unwind releases frames down to and including s's frame. Frames above it
// that nobody closed are closed too, so the stream stays balanced, but the
// leak is reported.
func (w *Writer) unwind(s *Scope) error {
	if s.index >= len(w.frames) || w.frames[s.index] != s.frame {
		return structural("scope released after its frame was closed")
	}
	var err error
	if leaked := len(w.frames) - 1 - s.index; leaked > 0 {
		err = structural("%d frames left open inside scope", leaked)
	}
	for len(w.frames) > s.index {
		if e := w.release(); err == nil {
			err = e
		}
	}
	return err
}
