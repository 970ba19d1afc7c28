package verify

import (
	"time"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Request represents a keychain verification request
type Request struct {
	Target app.KeychainTarget
}

// Response reports the outcome of an unlock
type Response struct {
	Path       string         `json:"path" yaml:"path"`
	Format     string         `json:"format" yaml:"format"`
	State      string         `json:"state" yaml:"state"`
	Items      int            `json:"items" yaml:"items"`
	Trashed    int            `json:"trashed" yaml:"trashed"`
	Categories map[string]int `json:"categories" yaml:"categories"`
	UnlockTime time.Duration  `json:"unlock_time" yaml:"unlock_time"`
}
