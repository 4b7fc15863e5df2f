// Package logging provides log sinks used alongside the console handler.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aperturelabs/alms/internal/clock"
)

const dayLayout = "2006-01-02"

// DailyFileWriter appends to <folder>/<YYYY-MM-DD>.txt and switches files
// when the local date changes. Safe for concurrent use.
type DailyFileWriter struct {
	folder string
	clock  clock.Clock

	mu   sync.Mutex
	day  string
	file *os.File
}

func NewDailyFileWriter(folder string, clk clock.Clock) (*DailyFileWriter, error) {
	if clk == nil {
		clk = clock.Real()
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("create log folder: %w", err)
	}
	return &DailyFileWriter{folder: folder, clock: clk}, nil
}

func (w *DailyFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.clock.Now().Format(dayLayout)
	if w.file == nil || day != w.day {
		if err := w.rotate(day); err != nil {
			return 0, err
		}
	}

	return w.file.Write(p)
}

func (w *DailyFileWriter) rotate(day string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	f, err := os.OpenFile(w.Path(day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	w.file = f
	w.day = day
	return nil
}

func (w *DailyFileWriter) Path(day string) string {
	return filepath.Join(w.folder, day+".txt")
}

func (w *DailyFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Today returns the file name component for t.
func Today(t time.Time) string {
	return t.Format(dayLayout)
}
