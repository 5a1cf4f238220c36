// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import (
	"time"

	ls "github.com/db47h/logicsim"
)

// Metrics receives editor events. Implementations must be safe for concurrent
// use.
//
type Metrics interface {
	// Edit is called after every edit operation with its outcome.
	Edit(op string, err error)
	// Evaluation is called after every evaluation pass.
	Evaluation(d time.Duration, r *ls.Result)
	// Sessions is called with the new session count whenever it changes.
	Sessions(n int)
}

type nopMetrics struct{}

func (nopMetrics) Edit(string, error) {}
func (nopMetrics) Evaluation(time.Duration, *ls.Result) {}
func (nopMetrics) Sessions(int) {}
