package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RunWithSpinner executes action while a spinner titled title is shown.
// Without a terminal the action runs directly. The action's error is returned.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	var result error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result = action(ctx)
	}()

	spinnerErr := spinner.New().
		Title(title).
		Action(func() {
			select {
			case <-done:
			case <-ctx.Done():
			}
		}).
		Run()

	// The action observes ctx itself, so waiting here is bounded by it.
	<-done

	if spinnerErr != nil && result == nil {
		return fmt.Errorf("spinner: %w", spinnerErr)
	}
	return result
}
