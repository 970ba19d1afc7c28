package export

import (
	"strings"

	sinks "github.com/deploymenttheory/go-opkeychain/internal/export"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Validate validates an export request
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return err
	}

	r.Format = strings.ToLower(r.Format)
	supported := false
	for _, format := range sinks.Formats() {
		if r.Format == format {
			supported = true
			break
		}
	}
	if !supported {
		return app.NewError(app.ErrCodeInvalidInput,
			"unsupported export format "+r.Format+" (supported: "+strings.Join(sinks.Formats(), ", ")+")", nil)
	}

	if r.OutputPath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output path is required", nil)
	}
	if r.OutputPath == "-" && r.Format == sinks.FormatSQLite {
		return app.NewError(app.ErrCodeInvalidInput, "sqlite export cannot be written to stdout", nil)
	}
	return nil
}
