package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// getPassword reads a line from the terminal without echoing it, restoring
// the terminal state if the process is interrupted meanwhile.
func getPassword(prompt string) []byte {
	initialTermState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		printErrorAndExit(err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		_ = term.Restore(int(syscall.Stdin), initialTermState)
		os.Exit(1)
	}()
	defer signal.Stop(interrupt)

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		printErrorAndExit(err)
	}
	return password
}
