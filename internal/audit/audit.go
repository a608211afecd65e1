package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/heyvito/oxio/internal/utils"
)

// TimeLayout is the timestamp format of audit entries.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Entry is a single audit log record. Item values are never recorded.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds, UTC.
	Operation string `json:"op"`
	Host      string `json:"host,omitempty"`

	// Optional fields depending on operation.
	Group  string `json:"group,omitempty"`
	Name   string `json:"name,omitempty"`
	Remote string `json:"remote,omitempty"` // For sync init/merge.
	Count  int    `json:"count,omitempty"`  // Items affected or indexed.
	Error  string `json:"error,omitempty"`
}

// Log appends entries to a JSON-lines file.
type Log struct {
	path string
	z    *zap.Logger
	file *os.File
}

// Open opens the audit log at path for appending, creating it and its
// directory when missing.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(f),
		zapcore.InfoLevel,
	)
	z := zap.New(core).With(zap.String("host", utils.GetHostname()))
	return &Log{path: path, z: z, file: f}, nil
}

// Nop returns a Log that discards every entry.
func Nop() *Log {
	return &Log{z: zap.NewNop()}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:    "ts",
		MessageKey: "op",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(TimeLayout))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// Path returns the file backing the log, or "" for a Nop log.
func (l *Log) Path() string {
	return l.path
}

// Record appends e. Failing to write is not reported: operations must not
// fail because the audit trail could not be written.
func (l *Log) Record(e Entry) {
	fields := make([]zap.Field, 0, 5)
	if e.Group != "" {
		fields = append(fields, zap.String("group", e.Group))
	}
	if e.Name != "" {
		fields = append(fields, zap.String("name", e.Name))
	}
	if e.Remote != "" {
		fields = append(fields, zap.String("remote", e.Remote))
	}
	if e.Count != 0 {
		fields = append(fields, zap.Int("count", e.Count))
	}
	if e.Error != "" {
		fields = append(fields, zap.String("error", e.Error))
	}
	l.z.Info(e.Operation, fields...)
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	_ = l.z.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
