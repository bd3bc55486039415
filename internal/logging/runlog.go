package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RunLog is the line-oriented diagnostic log: one timestamped entry per
// significant event, written to a per-run file under the log directory.
// Line shape: "<ISO8601 timestamp> - <message>".
type RunLog struct {
	mu   sync.Mutex
	w    *lumberjack.Logger
	path string
	now  func() time.Time
}

// NewRunLog creates the log file for one diagnostic run. The file name
// carries the run's start time so successive runs never clobber each
// other.
func NewRunLog(logDir string) (*RunLog, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("network_debug_%s.log", time.Now().Format("20060102_1504"))
	return &RunLog{
		w: &lumberjack.Logger{
			Filename: filepath.Join(logDir, name),
			MaxSize:  5, // MB
		},
		path: filepath.Join(logDir, name),
		now:  time.Now,
	}, nil
}

// Path returns the log file location for display after the run.
func (l *RunLog) Path() string { return l.path }

// Event appends one timestamped line. Write failures are swallowed:
// losing a log line must never abort a diagnostic run.
func (l *RunLog) Event(msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := l.now().Format(time.RFC3339) + " - " + msg + "\n"
	_, _ = l.w.Write([]byte(line))
}

func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	return l.w.Close()
}
