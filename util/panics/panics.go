package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/kaspanet/utxoledger/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic, logs it with its stack trace and exits.
// It must be deferred directly.
func HandlePanic(log *logger.Logger, goroutineName string) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error in %s: %+v", goroutineName, err)
	exit(log, reason, debug.Stack())
}

func exit(log *logger.Logger, reason string, stackTrace []byte) {
	if !log.Backend().IsRunning() {
		fmt.Fprintf(os.Stderr, "Exiting: %s\n", reason)
		if stackTrace != nil {
			fmt.Fprintf(os.Stderr, "Stack trace: %s\n", stackTrace)
		}
		os.Exit(1)
	}

	exitHandlerDone := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if stackTrace != nil {
			log.Criticalf("Stack trace: %s", stackTrace)
		}
		log.Backend().Close()
		close(exitHandlerDone)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-exitHandlerDone:
	}
	os.Exit(1)
}
