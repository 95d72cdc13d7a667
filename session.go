package vitals

import (
	"sync/atomic"
	"time"
)

// Origin tells where a dataset was loaded from.
type Origin int

const (
	FromFile Origin = iota + 1
	FromAPI
)

func (o Origin) String() string {
	switch o {
	case FromFile:
		return "file"
	case FromAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Dataset is a loaded table and its provenance.
type Dataset struct {
	Table  *Table
	Origin Origin
	Loaded time.Time
}

// Session holds the current dataset. Readers always observe either the complete previous dataset
// or the complete new one.
//
// The zero value is a session without dataset. It is safe for concurrent use.
type Session struct {
	current atomic.Pointer[Dataset]
}

// Current returns the current dataset, or nil if there is none.
func (s *Session) Current() *Dataset { return s.current.Load() }

// Replace makes t the current dataset. A nil table clears the session.
func (s *Session) Replace(t *Table, origin Origin) *Dataset {
	if t == nil {
		s.Clear()
		return nil
	}
	ds := &Dataset{Table: t, Origin: origin, Loaded: time.Now()}
	s.current.Store(ds)
	return ds
}

// Clear discards the current dataset.
func (s *Session) Clear() { s.current.Store(nil) }
