package common

import "log"

// Logf is the logger used across the engine. Lines carry a bracketed subsystem prefix
// such as "[Layout]". Replace it with SetLogger.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces Logf. Passing nil silences all engine logging.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
