package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"alertstate/internal/reconciler"
)

// cooldownWait blocks for the cooldown and shows a spinner meanwhile. The
// spinner only draws on a terminal.
func cooldownWait(out io.Writer, quiet bool) reconciler.WaitFunc {
	return func(d time.Duration) {
		if quiet {
			time.Sleep(d)
			return
		}
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
		s.Suffix = fmt.Sprintf(" Rate limited, retrying in %s...", d)
		s.Start()
		defer s.Stop()
		time.Sleep(d)
	}
}
