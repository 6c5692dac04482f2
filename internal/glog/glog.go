/*
Package glog provides the scoped, leveled logging used across the
codegraph core (storage, graph store, mapper, algorithms). It is a thin
wrapper over zerolog so every component logs through the same sink and
field conventions instead of rolling its own.
*/
package glog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	base    = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	scoped  = map[string]zerolog.Logger{}
	enabled = true
)

/*
Get returns the logger for a given component scope (e.g. "storage",
"graph", "mapper"). Loggers are cached per scope.
*/
func Get(scope string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := scoped[scope]; ok {
		return l
	}

	l := base.With().Str("component", scope).Logger()
	if !enabled {
		l = l.Level(zerolog.Disabled)
	}
	scoped[scope] = l
	return l
}

/*
SetOutput redirects all future log output; used by hosting applications
and by tests that want to capture log lines.
*/
func SetOutput(w zerolog.ConsoleWriter) {
	mu.Lock()
	defer mu.Unlock()

	base = zerolog.New(w).With().Timestamp().Logger()
	scoped = map[string]zerolog.Logger{}
}

/*
Disable silences all codegraph logging. Intended for test fixtures that
don't want diagnostic noise on stderr.
*/
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	enabled = false
	scoped = map[string]zerolog.Logger{}
}
