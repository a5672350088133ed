package journal

import (
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/postoffice/internal/errors"
	"github.com/Iron-Ham/postoffice/internal/event"
)

// Journal is the run's single serialization point. Every actor records its
// observable transitions through it, and the line numbers it hands out form a
// gap-free sequence starting at 1 that matches the line order in the output.
type Journal struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	next   uint64
	closed bool
	bus    *event.Bus
	name   string
}

// Option configures a Journal.
type Option func(*Journal)

// WithBus publishes an event.EntryRecordedEvent for every recorded line.
func WithBus(bus *event.Bus) Option {
	return func(j *Journal) {
		j.bus = bus
	}
}

// Create truncates or creates path on fs and returns a Journal writing to it.
// The file is closed by Close.
func Create(fs afero.Fs, path string, opts ...Option) (*Journal, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.NewResourceError("cannot create journal", errors.Join(errors.ErrJournalOpen, err)).
			WithResource(path)
	}
	j := New(f, opts...)
	j.closer = f
	j.name = path
	return j, nil
}

// New returns a Journal writing to w. Close does not close w.
func New(w io.Writer, opts ...Option) *Journal {
	j := &Journal{out: w, name: "journal"}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Record assigns the next line number to e, writes the line and returns the
// number. The line is written with a single unbuffered write so it is visible
// in the file once Record returns. A failed write does not consume a number.
func (j *Journal) Record(e Entry) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return 0, errors.NewResourceError("record after close", errors.ErrJournalClosed).WithResource(j.name)
	}

	e.Line = j.next + 1
	text := e.String()
	if _, err := io.WriteString(j.out, text+"\n"); err != nil {
		return 0, errors.NewResourceError("cannot write line", errors.Join(errors.ErrJournalWrite, err)).
			WithResource(j.name)
	}
	j.next = e.Line

	j.bus.Publish(event.NewEntryRecordedEvent(e.Line, string(e.Tag()), e.ActorID, e.Action.Key(), e.Service, text))
	return e.Line, nil
}

// Lines returns how many lines have been recorded so far.
func (j *Journal) Lines() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.next
}

// Close stops accepting records and closes the underlying file if the journal
// owns one. It is safe to call more than once.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	if j.closer != nil {
		if err := j.closer.Close(); err != nil {
			return errors.NewResourceError("cannot close journal", err).WithResource(j.name)
		}
	}
	return nil
}
