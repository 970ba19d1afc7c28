package export

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

func sampleRecovered() []types.RecoveredItem {
	created := time.Unix(1373753414, 0)
	return []types.RecoveredItem{
		{
			Item: types.Item{
				UUID:      "F2D5CBDA8C2A4BD2B6C2E4C0A0B7A5A1",
				Title:     "Skype",
				Category:  "Login",
				TypeCode:  "001",
				Format:    types.FormatCloud,
				CreatedAt: created,
				UpdatedAt: created,
			},
			Plaintext: []byte(`{"fields": [{"name": "password", "value": "secret"}]}`),
		},
		{
			Item: types.Item{
				UUID:     "5D7A2E1F00000000000000000000AAAA",
				Title:    "Bank PIN",
				Category: "Secure Note",
				TypeCode: "003",
				Format:   types.FormatAgile,
				Trashed:  true,
			},
			Plaintext: []byte("not json"),
		},
		{
			Item: types.Item{
				UUID:     "00925AAC00000000000000000000BBBB",
				Title:    "Google",
				Category: "Login",
				TypeCode: "001",
				Format:   types.FormatAgile,
			},
			Err: errors.New("integrity check failed"),
		},
	}
}

func TestNewRecord(t *testing.T) {
	items := sampleRecovered()

	record := NewRecord(items[0])
	assert.Equal(t, "Skype", record.Title)
	assert.Equal(t, "cloudkeychain", record.Format)
	assert.Equal(t, "2013-07-13T22:10:14Z", record.CreatedAt)
	payload, ok := record.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, payload, "fields")
	assert.Empty(t, record.Error)

	record = NewRecord(items[1])
	assert.Equal(t, "not json", record.Payload)
	assert.True(t, record.Trashed)
	assert.Empty(t, record.CreatedAt)

	record = NewRecord(items[2])
	assert.Nil(t, record.Payload)
	assert.Equal(t, "integrity check failed", record.Error)
}

func TestNew_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"unknown", "xml"},
		{"empty", ""},
		{"sqlite needs a path", FormatSQLite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink, err := New(tc.format, &bytes.Buffer{})
			assert.Error(t, err)
			assert.Nil(t, sink)
		})
	}
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	sink, err := New("JSON", &buf)
	require.NoError(t, err)

	items := sampleRecovered()
	require.NoError(t, sink.Write(items[:1]))
	require.NoError(t, sink.Write(items[1:]))
	assert.Zero(t, buf.Len(), "output is written on Close")
	require.NoError(t, sink.Close())

	var records []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Bank PIN", records[0].Title)
	assert.Equal(t, "Google", records[1].Title)
	assert.Equal(t, "Skype", records[2].Title)
	assert.Equal(t, "integrity check failed", records[1].Error)

	// A second Close is a no-op and Write after Close fails
	assert.NoError(t, sink.Close())
	assert.Error(t, sink.Write(items))
}

func TestJSONSink_Empty(t *testing.T) {
	var buf bytes.Buffer
	sink, err := New(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLSink(t *testing.T) {
	var buf bytes.Buffer
	sink, err := New(FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, sink.Write(sampleRecovered()))
	require.NoError(t, sink.Close())

	var records []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Bank PIN", records[0]["title"])
	assert.Equal(t, "not json", records[0]["payload"])
	assert.Equal(t, true, records[0]["trashed"])
}

func TestCBORSink(t *testing.T) {
	var buf bytes.Buffer
	sink, err := New(FormatCBOR, &buf)
	require.NoError(t, err)
	require.NoError(t, sink.Write(sampleRecovered()))
	require.NoError(t, sink.Close())

	var records []map[string]interface{}
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Skype", records[2]["title"])
	assert.Equal(t, "F2D5CBDA8C2A4BD2B6C2E4C0A0B7A5A1", records[2]["uuid"])

	// Canonical encoding is deterministic
	var again bytes.Buffer
	sink, err = New(FormatCBOR, &again)
	require.NoError(t, err)
	require.NoError(t, sink.Write(sampleRecovered()))
	require.NoError(t, sink.Close())
	assert.Equal(t, buf.Bytes(), again.Bytes())
}

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovered.db")

	sink, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, sink.Write(sampleRecovered()))
	// Writing the same items again upserts instead of failing on the primary key
	require.NoError(t, sink.Write(sampleRecovered()))
	require.NoError(t, sink.Close())

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM recovered_items").Scan(&count))
	assert.Equal(t, 3, count)

	tests := []struct {
		name          string
		uuid          string
		wantPlaintext sql.NullString
		wantError     sql.NullString
		wantTrashed   int
	}{
		{
			name:          "json payload is compacted",
			uuid:          "F2D5CBDA8C2A4BD2B6C2E4C0A0B7A5A1",
			wantPlaintext: sql.NullString{String: `{"fields":[{"name":"password","value":"secret"}]}`, Valid: true},
		},
		{
			name:          "non-json payload is stored as is",
			uuid:          "5D7A2E1F00000000000000000000AAAA",
			wantPlaintext: sql.NullString{String: "not json", Valid: true},
			wantTrashed:   1,
		},
		{
			name:      "failed item keeps its error",
			uuid:      "00925AAC00000000000000000000BBBB",
			wantError: sql.NullString{String: "integrity check failed", Valid: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var plaintext, errText sql.NullString
			var trashed int
			err := db.QueryRow("SELECT plaintext, error, trashed FROM recovered_items WHERE uuid = ?", tc.uuid).
				Scan(&plaintext, &errText, &trashed)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPlaintext, plaintext)
			assert.Equal(t, tc.wantError, errText)
			assert.Equal(t, tc.wantTrashed, trashed)
		})
	}
}
