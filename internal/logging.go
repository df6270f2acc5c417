package internal

import (
	"log"
	"os"
)

// InitLogging routes pipeline logs to stdout with microsecond timestamps.
// Generated files go to the output folder, so stdout stays log-only.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
