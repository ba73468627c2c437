package models

import (
	"fmt"
	"time"
)

// Failure describes an absorbed error: a question fetch or a persistence
// write that failed without interrupting the session.
type Failure struct {
	Op  string    `json:"op"`
	Key string    `json:"key,omitempty"`
	Err error     `json:"-"`
	At  time.Time `json:"at"`
}

func (f Failure) Error() string {
	if f.Key == "" {
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Op, f.Key, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// FailureFunc receives absorbed failures. A nil FailureFunc discards them.
type FailureFunc func(Failure)

// Report calls fn when it is set.
func (fn FailureFunc) Report(op, key string, err error) {
	if fn == nil || err == nil {
		return
	}
	fn(Failure{Op: op, Key: key, Err: err, At: time.Now()})
}
