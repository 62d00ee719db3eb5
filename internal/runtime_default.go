package internal

import (
	"github.com/petermattis/goid"
)

// getGID falls back to parsing runtime.Stack on targets without assembly
// support in goid, so goroutines stay distinct on wasm too.
func getGID() int64 {
	return goid.Get()
}
