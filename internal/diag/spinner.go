package diag

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is the progress indicator that runs while the probe sequence
// is in flight. It is purely cosmetic: it shares nothing with the
// probes beyond the stop channel, and Start's returned stop function
// blocks until the goroutine has exited, so a run never finishes with
// background activity still pending.
type Spinner struct {
	Writer   io.Writer
	Interval time.Duration
	Label    string
}

func NewSpinner(w io.Writer, interval time.Duration) *Spinner {
	return &Spinner{Writer: w, Interval: interval, Label: "probing"}
}

// Start launches the animation goroutine and returns its stop function.
// Calling stop more than once is safe.
func (s *Spinner) Start() (stop func()) {
	if s == nil || s.Writer == nil {
		return func() {}
	}
	interval := s.Interval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		i := 0
		for {
			select {
			case <-done:
				// erase the spinner line before handing the terminal back
				fmt.Fprint(s.Writer, "\r\033[K")
				return
			case <-t.C:
				frame := spinnerStyle.Render(spinnerFrames[i%len(spinnerFrames)])
				fmt.Fprintf(s.Writer, "\r%s %s", frame, s.Label)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
