package boot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"
)

const logFileTimeFormat = "2006-01-02_15-04-05_000000"

// rotatingFile is an io.Writer over <dir>/log-<timestamp>.log. Rotate swaps in
// a fresh file named after the current clock time.
type rotatingFile struct {
	mu    sync.Mutex
	dir   string
	clock clockwork.Clock
	file  *os.File
}

func openRotatingFile(dir string, clock clockwork.Clock) (*rotatingFile, error) {
	r := &rotatingFile{dir: dir, clock: clock}
	if err := r.Rotate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	return r.file.Write(p)
}

func (r *rotatingFile) Rotate() error {
	name := filepath.Join(r.dir, fmt.Sprintf("log-%s.log", r.clock.Now().Format(logFileTimeFormat)))
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	r.mu.Lock()
	old := r.file
	r.file = file
	r.mu.Unlock()

	if old != nil {
		return old.Close()
	}
	return nil
}

func (r *rotatingFile) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return ""
	}
	return r.file.Name()
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
