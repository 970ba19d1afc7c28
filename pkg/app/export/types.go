package export

import (
	"time"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Request represents a bulk export request
type Request struct {
	Target     app.KeychainTarget
	Format     string
	OutputPath string
	Overwrite  bool
}

// Response summarises a completed export
type Response struct {
	Path       string        `json:"path" yaml:"path"`
	OutputPath string        `json:"output_path" yaml:"output_path"`
	Format     string        `json:"format" yaml:"format"`
	Exported   int           `json:"exported" yaml:"exported"`
	Failed     int           `json:"failed" yaml:"failed"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}
