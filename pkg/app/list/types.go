package list

import (
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Request represents an item listing request
type Request struct {
	Target app.KeychainTarget

	// Filters
	TitlePattern   string
	Category       string
	IncludeTrashed bool
}

// Response lists the items that matched
type Response struct {
	Path   string            `json:"path" yaml:"path"`
	Format string            `json:"format" yaml:"format"`
	Items  []app.ItemSummary `json:"items" yaml:"items"`
	Total  int               `json:"total" yaml:"total"`
}
