package show

import (
	"strings"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Validate validates a show request
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.UUID) == "" {
		return app.NewError(app.ErrCodeInvalidInput, "item uuid is required", nil)
	}
	return nil
}
