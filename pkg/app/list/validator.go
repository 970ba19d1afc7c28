package list

import (
	"path/filepath"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Validate validates a listing request
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return err
	}
	if r.TitlePattern != "" {
		if _, err := filepath.Match(r.TitlePattern, ""); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid title pattern", err)
		}
	}
	return nil
}
