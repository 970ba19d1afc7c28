package agile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// Paths inside an .agilekeychain container
const (
	DataDir        = "data/default"
	KeysFile       = "encryptionKeys.js"
	BuildNumFile   = "config/buildnum"
	ItemFileSuffix = ".1password"
)

// containerReader implements the AgileContainerReader interface for a directory on disk
type containerReader struct {
	path        string
	keys        types.AgileKeyFile
	buildNumber int
	hasBuild    bool
}

// Ensure containerReader implements the AgileContainerReader interface
var _ interfaces.AgileContainerReader = (*containerReader)(nil)

// NewContainerReader opens the legacy container rooted at path. The key file must
// exist; config/buildnum is optional but must lie within the supported build window
// when present.
func NewContainerReader(path string) (interfaces.AgileContainerReader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open agile keychain %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrFormat, path)
	}

	reader := &containerReader{path: path}
	if err := reader.readBuildNumber(); err != nil {
		return nil, err
	}

	keysPath := filepath.Join(path, DataDir, KeysFile)
	data, err := os.ReadFile(keysPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing key file, expected at %s", types.ErrFormat, keysPath)
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	if err := json.Unmarshal(data, &reader.keys); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", types.ErrFormat, KeysFile, err)
	}

	return reader, nil
}

// readBuildNumber parses config/buildnum. Newer writers stopped emitting the file.
func (r *containerReader) readBuildNumber() error {
	data, err := os.ReadFile(filepath.Join(r.path, BuildNumFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read build number: %w", err)
	}

	build, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("%w: build number %q is not an integer", types.ErrFormat, strings.TrimSpace(string(data)))
	}
	if build < types.AgileBuildMin || build > types.AgileBuildMax {
		return fmt.Errorf("%w: build %d outside supported range [%d,%d]",
			types.ErrUnsupportedFormat, build, types.AgileBuildMin, types.AgileBuildMax)
	}
	r.buildNumber = build
	r.hasBuild = true
	return nil
}

// Path returns the container root
func (r *containerReader) Path() string {
	return r.path
}

// BuildNumber returns the parsed config/buildnum and whether it was present
func (r *containerReader) BuildNumber() (int, bool) {
	return r.buildNumber, r.hasBuild
}

// Levels returns a copy of the security level table
func (r *containerReader) Levels() map[string]string {
	levels := make(map[string]string, len(r.keys.Levels))
	for level, identifier := range r.keys.Levels {
		levels[level] = identifier
	}
	return levels
}

// KeyForLevel returns the one key record whose identifier the level maps to
func (r *containerReader) KeyForLevel(level string) (types.AgileKeyRecord, error) {
	identifier, ok := r.keys.Levels[level]
	if !ok {
		return types.AgileKeyRecord{}, fmt.Errorf("%w: unknown security level %q", types.ErrLookup, level)
	}

	var matches []types.AgileKeyRecord
	for _, record := range r.keys.List {
		if record.Identifier == identifier {
			matches = append(matches, record)
		}
	}
	if len(matches) != 1 {
		return types.AgileKeyRecord{}, fmt.Errorf("%w: expected exactly one key for level %s, got %d",
			types.ErrLookup, level, len(matches))
	}
	return matches[0], nil
}

// Items reads every item file in data/default, ordered by file name
func (r *containerReader) Items() ([]types.AgileItemRecord, error) {
	paths, err := filepath.Glob(filepath.Join(r.path, DataDir, "*"+ItemFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to list item files: %w", err)
	}
	sort.Strings(paths)

	items := make([]types.AgileItemRecord, 0, len(paths))
	for _, path := range paths {
		item, err := readItemFile(path)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// readItemFile decodes one *.1password file
func readItemFile(path string) (types.AgileItemRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.AgileItemRecord{}, fmt.Errorf("failed to read item file: %w", err)
	}

	var item types.AgileItemRecord
	if err := json.Unmarshal(data, &item); err != nil {
		return types.AgileItemRecord{}, fmt.Errorf("%w: failed to parse %s: %v", types.ErrFormat, filepath.Base(path), err)
	}
	if item.UUID == "" {
		item.UUID = strings.TrimSuffix(filepath.Base(path), ItemFileSuffix)
	}
	return item, nil
}
