package pantryassistant

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CommandJournal records every processed command.
type CommandJournal interface {
	LogCommand(entry CommandLog) error
}

// NewJournalFilePath returns a timestamped path naming the surface that
// produced the journal, e.g. ./logs/1700000000.cli.json.
func NewJournalFilePath(surface string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(surface), ":", "_"),
	)
}

// CommandLog represents one command run through the interpreter
type CommandLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Intent    string    `json:"intent"`
	State     string    `json:"state"`
	Action    string    `json:"action,omitempty"`
	Response  string    `json:"response"`
	Error     string    `json:"error,omitempty"`
}

// NewCommandLog stamps an entry with a fresh id and the current time.
func NewCommandLog(input string) CommandLog {
	return CommandLog{ID: uuid.NewString(), Timestamp: time.Now(), Input: input}
}

// FileCommandJournal accumulates entries and writes them as one document on
// Flush.
type FileCommandJournal struct {
	mu      sync.Mutex
	entries []CommandLog
	writer  io.Writer
}

func NewFileCommandJournal(writer io.Writer) *FileCommandJournal {
	return &FileCommandJournal{
		entries: make([]CommandLog, 0),
		writer:  writer,
	}
}

// LogCommand buffers the entry (does not flush immediately)
func (j *FileCommandJournal) LogCommand(entry CommandLog) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return nil
}

// Flush writes all buffered entries and clears the buffer
func (j *FileCommandJournal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"command_session": map[string]any{
			"timestamp": time.Now(),
			"commands":  j.entries,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal command journal: %w", err)
	}

	if _, err := j.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write command journal: %w", err)
	}

	j.entries = j.entries[:0]
	return nil
}

// NoOpCommandJournal discards all entries
type NoOpCommandJournal struct{}

func NewNoOpCommandJournal() *NoOpCommandJournal {
	return &NoOpCommandJournal{}
}

func (NoOpCommandJournal) LogCommand(CommandLog) error {
	return nil
}

// StdoutCommandJournal writes each entry as a JSON line (for Lambda/CloudWatch)
type StdoutCommandJournal struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewStdoutCommandJournal() *StdoutCommandJournal {
	return &StdoutCommandJournal{writer: os.Stdout}
}

func (j *StdoutCommandJournal) LogCommand(entry CommandLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = fmt.Fprintln(j.writer, string(data))
	return err
}
