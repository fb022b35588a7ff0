package gitane

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stream names an output stream of the child process.
type Stream string

// Output streams.
const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Event is one chunk of output as it arrived.
type Event struct {
	Stream Stream
	Data   string
}

// EventSink receives output chunks while a command runs. Emit is called
// from one goroutine per stream, so implementations must be safe for
// concurrent use.
type EventSink interface {
	Emit(Event)
}

// FuncSink adapts a function to EventSink.
type FuncSink func(Event)

// Emit implements EventSink.
func (f FuncSink) Emit(ev Event) {
	f(ev)
}

// ChannelSink delivers events on a channel. Emit blocks while the channel
// is full, so a slow consumer slows down reading of the child's output.
type ChannelSink struct {
	ch   chan Event
	once sync.Once
}

// NewChannelSink creates a sink with the given channel buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan Event, buffer)}
}

// Events returns the channel events are delivered on.
func (s *ChannelSink) Events() <-chan Event {
	return s.ch
}

// Emit implements EventSink.
func (s *ChannelSink) Emit(ev Event) {
	s.ch <- ev
}

// Close closes the events channel. Call it after every run using the sink
// has completed.
func (s *ChannelSink) Close() {
	s.once.Do(func() { close(s.ch) })
}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// Emit implements EventSink.
func (m MultiSink) Emit(ev Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}

// LogSink logs every chunk at Level (debug by default).
type LogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewLogSink creates a sink that logs to logger at debug level.
// If logger is nil, uses the default slog logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger, Level: slog.LevelDebug}
}

// Emit implements EventSink.
func (s *LogSink) Emit(ev Event) {
	s.Logger.Log(context.Background(), s.Level, "command output",
		"stream", ev.Stream,
		"data", ev.Data,
	)
}

const readChunkSize = 32 * 1024

// pump copies r into buf chunk by chunk, decoding UTF-8 and publishing each
// chunk to sink. A multibyte sequence split across reads is held back until
// it is complete; invalid bytes become U+FFFD.
func pump(r io.Reader, stream Stream, buf *strings.Builder, sink EventSink) error {
	decoded := transform.NewReader(r, unicode.UTF8.NewDecoder())
	chunk := make([]byte, readChunkSize)

	for {
		n, err := decoded.Read(chunk)
		if n > 0 {
			data := string(chunk[:n])
			buf.WriteString(data)
			if sink != nil {
				sink.Emit(Event{Stream: stream, Data: data})
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &OutputError{Stream: stream, Err: err}
		}
	}
}

// OutputError reports a failure reading a child's output stream.
type OutputError struct {
	Stream Stream
	Err    error
}

func (e *OutputError) Error() string {
	return "read " + string(e.Stream) + ": " + e.Err.Error()
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
