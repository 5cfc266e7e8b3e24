// Package chatlog is the append-only session event log. Every submitted user
// turn produces exactly one request line followed by exactly one response or
// error line, all tagged with the session id.
//
// Each operation returns an error so write failures stay visible to the
// caller; the pipeline discards them, since log failures are non-fatal and
// must never reach the user.
package chatlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/itmo-ai/qa-bot-backend/internal/provider"
)

const answerPreviewLimit = 200

// Logger appends one line per event: timestamp, level, message. The file is
// opened O_APPEND so single-line writes from independent processes do not
// interleave.
type Logger struct {
	mu sync.Mutex
	f  *os.File
}

// New opens (creating if needed) the log file at path.
func New(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{f: f}, nil
}

func (l *Logger) Close() error {
	return l.f.Close()
}

// Request records a submitted question before the gateway call.
func (l *Logger) Request(sessionID, model string, programs [2]string, contextChars int, question string) error {
	return l.write("INFO", fmt.Sprintf(
		"session=%s | submit | model=%s | programs=[%s, %s] | context_chars=%d | question=%s",
		sessionID, model, programs[0], programs[1], contextChars, question))
}

// Response records a successful gateway reply. The answer preview is capped
// at 200 characters with newlines collapsed to spaces.
func (l *Logger) Response(sessionID string, latency time.Duration, usage *provider.TokenUsage, answer string) error {
	preview := strings.ReplaceAll(truncate(answer, answerPreviewLimit), "\n", " ")
	return l.write("INFO", fmt.Sprintf(
		"session=%s | success | latency_s=%.3f | usage=%s | answer_chars=%d | answer_preview=%s",
		sessionID, latency.Seconds(), usage, utf8.RuneCountInString(answer), preview))
}

// Error records a failed gateway call with the full error text.
func (l *Logger) Error(sessionID string, err error) error {
	return l.write("ERROR", fmt.Sprintf("session=%s | error | %v", sessionID, err))
}

func (l *Logger) write(level, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.f, "%s %s %s\n",
		time.Now().Format("2006-01-02 15:04:05,000"), level, msg)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
