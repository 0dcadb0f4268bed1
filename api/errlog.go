/*
errlog.go - Persistent error record

Unhandled webhook failures are appended to a plain text file so they
survive restarts and can be read straight off the deployment host. This
is deliberately primitive: the error path must have no failure modes of
its own beyond the filesystem.
*/
package api

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// ErrorLog appends timestamped entries to a file. The zero value and the
// nil pointer both degrade to stderr logging.
type ErrorLog struct {
	mu   sync.Mutex
	path string
}

// NewErrorLog creates an ErrorLog writing to path. An empty path disables
// the file and keeps stderr logging only.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path}
}

// Record writes one entry. Always logs to stderr; additionally appends to
// the file when one is configured. A write failure is itself logged and
// otherwise ignored - the error path never panics.
func (l *ErrorLog) Record(entry string) {
	log.Printf("ERROR: %s", entry)

	if l == nil || l.path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("error log open failed: %v", err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] ERROR:\n%s\n%s\n",
		time.Now().Format(time.RFC3339), entry,
		"==================================================")
}
