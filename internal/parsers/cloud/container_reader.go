package cloud

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// Paths inside a .cloudkeychain container
const (
	ProfileDir  = "default"
	ProfileFile = "profile.js"
)

// containerReader implements the CloudContainerReader interface for a directory on disk
type containerReader struct {
	path    string
	profile types.CloudProfile
}

// Ensure containerReader implements the CloudContainerReader interface
var _ interfaces.CloudContainerReader = (*containerReader)(nil)

// NewContainerReader opens the cloud container rooted at path and decodes its profile
func NewContainerReader(path string) (interfaces.CloudContainerReader, error) {
	profilePath := filepath.Join(path, ProfileDir, ProfileFile)
	data, err := os.ReadFile(profilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing profile, expected at %s", types.ErrFormat, profilePath)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	body, err := unwrap(data, types.CloudProfilePrefix, types.CloudProfileSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProfileFile, err)
	}

	reader := &containerReader{path: path}
	if err := json.Unmarshal(body, &reader.profile); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", types.ErrFormat, ProfileFile, err)
	}
	return reader, nil
}

// unwrap strips the JavaScript framing around a JSON object
func unwrap(data []byte, prefix, suffix string) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte(prefix)) || !bytes.HasSuffix(data, []byte(suffix)) ||
		len(data) < len(prefix)+len(suffix) {
		return nil, fmt.Errorf("%w: expected %q ... %q framing", types.ErrFormat, prefix, suffix)
	}
	return data[len(prefix) : len(data)-len(suffix)], nil
}

// BandFileName returns the file name of band index (0 through 15)
func BandFileName(index int) string {
	return fmt.Sprintf("band_%X.js", index)
}

// Path returns the container root
func (r *containerReader) Path() string {
	return r.path
}

// Profile returns the decoded profile
func (r *containerReader) Profile() types.CloudProfile {
	return r.profile
}

// Items reads every band file that exists, in band order. Records inside a band are
// ordered by UUID.
func (r *containerReader) Items() ([]types.CloudItemRecord, error) {
	var items []types.CloudItemRecord
	for band := 0; band < types.CloudBandCount; band++ {
		path := filepath.Join(r.path, ProfileDir, BandFileName(band))
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", BandFileName(band), err)
		}

		records, err := ParseBand(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", BandFileName(band), err)
		}
		items = append(items, records...)
	}
	return items, nil
}

// ParseBand decodes the contents of one band file. Numbers are kept as json.Number
// so the record HMAC sees their literal text.
func ParseBand(data []byte) ([]types.CloudItemRecord, error) {
	body, err := unwrap(data, types.CloudBandPrefix, types.CloudBandSuffix)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var band map[string]map[string]interface{}
	if err := decoder.Decode(&band); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFormat, err)
	}

	keys := make([]string, 0, len(band))
	for key := range band {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]types.CloudItemRecord, 0, len(band))
	for _, key := range keys {
		record, err := newItemRecord(key, band[key])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// newItemRecord lifts the well-known members out of a decoded band entry
func newItemRecord(key string, fields map[string]interface{}) (types.CloudItemRecord, error) {
	if fields == nil {
		return types.CloudItemRecord{}, fmt.Errorf("%w: band entry %s is not an object", types.ErrFormat, key)
	}

	record := types.CloudItemRecord{
		UUID:     stringField(fields, "uuid"),
		Category: stringField(fields, "category"),
		Overview: stringField(fields, "o"),
		Key:      stringField(fields, "k"),
		Data:     stringField(fields, "d"),
		HMAC:     stringField(fields, "hmac"),
		Created:  intField(fields, "created"),
		Updated:  intField(fields, "updated"),
		Trashed:  boolField(fields, "trashed"),
		Fields:   fields,
	}
	if record.UUID == "" {
		record.UUID = key
	}
	if record.Overview == "" || record.Key == "" || record.Data == "" {
		return types.CloudItemRecord{}, fmt.Errorf("%w: band entry %s lacks an overview, key or data blob",
			types.ErrFormat, key)
	}
	return record, nil
}

func stringField(fields map[string]interface{}, name string) string {
	value, _ := fields[name].(string)
	return value
}

func intField(fields map[string]interface{}, name string) int64 {
	switch value := fields[name].(type) {
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int64(value)
	default:
		return 0
	}
}

func boolField(fields map[string]interface{}, name string) bool {
	switch value := fields[name].(type) {
	case bool:
		return value
	case json.Number:
		return value.String() != "0"
	default:
		return false
	}
}
