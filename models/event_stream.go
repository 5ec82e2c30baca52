package models

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dvicino/pdevs/devs"
	"github.com/dvicino/pdevs/devs/store"
)

// Record is one (time, message) pair an EventStream replays.
type Record[T devs.Time[T], M any] struct {
	Time T
	Msg  M
}

// Parser turns one line of text into a Record. NewEventStreamFromReader
// calls it once per non-empty line.
type Parser[T devs.Time[T], M any] func(line string) (Record[T, M], error)

// EventStream replays a fixed list of (time, message) records, in time
// order, regardless of the order they were constructed in. It never
// accepts external input: it is a pure trace-playback source, the PDEVS
// analogue of a fixture file.
//
// Grounded on basic_models/event_stream.hpp, restructured around a
// pre-sorted in-memory slice rather than incremental istream fetching: Go
// has no equivalent of the original's eof-prefetch dance, and a client
// providing records through an io.Reader or a TraceStore can simply read
// everything upfront since PDEVS traces are not unbounded streams the way
// the original's live-input use case assumed.
type EventStream[T devs.Time[T], M any] struct {
	records []Record[T, M]
	idx     int
	last    T
	next    T
}

// NewEventStream builds an EventStream over records, starting simulated
// time at init. Every record's Time must be strictly greater than init;
// records are sorted by Time before replay begins.
func NewEventStream[T devs.Time[T], M any](init T, records []Record[T, M]) *EventStream[T, M] {
	sorted := make([]Record[T, M], len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Less(sorted[j].Time) })

	e := &EventStream[T, M]{records: sorted, last: init}
	if len(sorted) == 0 {
		e.next = infinity[T]()
	} else {
		e.next = sorted[0].Time
	}
	return e
}

// NewEventStreamFromReader reads r line by line, parsing each non-empty
// line with parse, and builds an EventStream from the results.
func NewEventStreamFromReader[T devs.Time[T], M any](init T, r io.Reader, parse Parser[T, M]) (*EventStream[T, M], error) {
	var records []Record[T, M]
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		rec, err := parse(line)
		if err != nil {
			return nil, fmt.Errorf("models: parsing event stream line %q: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("models: reading event stream: %w", err)
	}
	return NewEventStream(init, records), nil
}

// NewEventStreamFromTrace loads a previously recorded run from st and
// replays it as an EventStream, decoding each stored (time, message)
// string pair with parseTime and parseMsg. This is the concrete form of
// spec.md's "event-stream collaborator" contract: a TraceStore-backed
// run becomes the input trace of another run.
func NewEventStreamFromTrace[T devs.Time[T], M any](
	ctx context.Context,
	init T,
	st store.TraceStore,
	runID string,
	parseTime func(string) (T, error),
	parseMsg func(string) (M, error),
) (*EventStream[T, M], error) {
	stored, err := st.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("models: loading trace %q: %w", runID, err)
	}

	records := make([]Record[T, M], 0, len(stored))
	for _, rec := range stored {
		t, err := parseTime(rec.Time)
		if err != nil {
			return nil, fmt.Errorf("models: parsing recorded time %q: %w", rec.Time, err)
		}
		m, err := parseMsg(rec.Msg)
		if err != nil {
			return nil, fmt.Errorf("models: parsing recorded message %q: %w", rec.Msg, err)
		}
		records = append(records, Record[T, M]{Time: t, Msg: m})
	}
	return NewEventStream(init, records), nil
}

// Advance returns the time until the next recorded message, or Infinity
// once every record has been replayed.
func (e *EventStream[T, M]) Advance() T {
	if e.idx >= len(e.records) {
		return infinity[T]()
	}
	return e.next.Sub(e.last)
}

// Output returns every record scheduled for the current instant: the
// original fetches a run of same-time records into one bag, so a stream
// with several messages sharing a timestamp emits them together.
func (e *EventStream[T, M]) Output() devs.Bag[M] {
	if e.idx >= len(e.records) {
		return nil
	}
	var out devs.Bag[M]
	t := e.records[e.idx].Time
	for i := e.idx; i < len(e.records) && !e.records[i].Time.Less(t) && !t.Less(e.records[i].Time); i++ {
		out = append(out, e.records[i].Msg)
	}
	return out
}

// Internal advances past every record just emitted and schedules the next
// distinct timestamp, if any.
func (e *EventStream[T, M]) Internal() {
	if e.idx >= len(e.records) {
		return
	}
	t := e.records[e.idx].Time
	for e.idx < len(e.records) && !e.records[e.idx].Time.Less(t) && !t.Less(e.records[e.idx].Time) {
		e.idx++
	}
	e.last = t
	if e.idx >= len(e.records) {
		e.next = infinity[T]()
	} else {
		e.next = e.records[e.idx].Time
	}
}

// External panics: an EventStream has an empty input domain.
func (e *EventStream[T, M]) External(devs.Bag[M], T) {
	panic(&devs.DomainError{ModelID: e.String(), Operation: "External"})
}

// Confluent panics: an EventStream has an empty input domain.
func (e *EventStream[T, M]) Confluent(devs.Bag[M]) {
	panic(&devs.DomainError{ModelID: e.String(), Operation: "Confluent"})
}

// String names the model for diagnostics and trace output.
func (e *EventStream[T, M]) String() string { return "event_stream" }

var _ devs.Atomic[devs.IntTime, int] = (*EventStream[devs.IntTime, int])(nil)
