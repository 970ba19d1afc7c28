// Package export writes recovered items to files in several encodings.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// Format names accepted by New and the CLI
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatCBOR   = "cbor"
	FormatSQLite = "sqlite"
)

// Formats lists every supported export format
func Formats() []string {
	return []string{FormatCBOR, FormatJSON, FormatSQLite, FormatYAML}
}

// Record is the exported shape of one recovered item. Payload holds the decoded
// plaintext JSON, or the raw plaintext string when it is not JSON.
type Record struct {
	UUID      string      `json:"uuid" yaml:"uuid" cbor:"uuid"`
	Title     string      `json:"title" yaml:"title" cbor:"title"`
	Category  string      `json:"category" yaml:"category" cbor:"category"`
	TypeCode  string      `json:"type_code" yaml:"type_code" cbor:"type_code"`
	Format    string      `json:"format" yaml:"format" cbor:"format"`
	Trashed   bool        `json:"trashed" yaml:"trashed" cbor:"trashed"`
	CreatedAt string      `json:"created_at,omitempty" yaml:"created_at,omitempty" cbor:"created_at,omitempty"`
	UpdatedAt string      `json:"updated_at,omitempty" yaml:"updated_at,omitempty" cbor:"updated_at,omitempty"`
	Payload   interface{} `json:"payload,omitempty" yaml:"payload,omitempty" cbor:"payload,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`
}

// NewRecord converts a recovered item into its exported shape
func NewRecord(item types.RecoveredItem) Record {
	record := Record{
		UUID:      item.Item.UUID,
		Title:     item.Item.Title,
		Category:  item.Item.Category,
		TypeCode:  item.Item.TypeCode,
		Format:    string(item.Item.Format),
		Trashed:   item.Item.Trashed,
		CreatedAt: formatTime(item.Item.CreatedAt),
		UpdatedAt: formatTime(item.Item.UpdatedAt),
	}
	if item.Err != nil {
		record.Error = item.Err.Error()
		return record
	}
	record.Payload = decodePayload(item.Plaintext)
	return record
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// decodePayload parses plaintext JSON into plain maps and slices. Object keys are
// sorted by every encoder used here, so output is deterministic.
func decodePayload(plaintext []byte) interface{} {
	if len(plaintext) == 0 {
		return nil
	}
	var payload interface{}
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return string(plaintext)
	}
	return payload
}

// encoderFunc writes a whole batch of records to w
type encoderFunc func(w io.Writer, records []Record) error

// streamSink buffers records and encodes them as one document on Close
type streamSink struct {
	w       io.Writer
	encode  encoderFunc
	records []Record
	closed  bool
}

// Ensure streamSink implements the ItemSink interface
var _ interfaces.ItemSink = (*streamSink)(nil)

// New creates a sink writing format to w. Use NewSQLite for FormatSQLite.
func New(format string, w io.Writer) (interfaces.ItemSink, error) {
	var encode encoderFunc
	switch strings.ToLower(format) {
	case FormatJSON:
		encode = encodeJSON
	case FormatYAML:
		encode = encodeYAML
	case FormatCBOR:
		encode = encodeCBOR
	case FormatSQLite:
		return nil, fmt.Errorf("%s export writes to a file path, use NewSQLite", FormatSQLite)
	default:
		return nil, fmt.Errorf("unsupported export format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return &streamSink{w: w, encode: encode}, nil
}

// Write buffers a batch of recovered items
func (s *streamSink) Write(items []types.RecoveredItem) error {
	if s.closed {
		return fmt.Errorf("export sink is closed")
	}
	for _, item := range items {
		s.records = append(s.records, NewRecord(item))
	}
	return nil
}

// Close encodes every buffered record, ordered by title then UUID
func (s *streamSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	sort.SliceStable(s.records, func(i, j int) bool {
		if s.records[i].Title != s.records[j].Title {
			return s.records[i].Title < s.records[j].Title
		}
		return s.records[i].UUID < s.records[j].UUID
	})
	if s.records == nil {
		s.records = []Record{}
	}
	if err := s.encode(s.w, s.records); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
