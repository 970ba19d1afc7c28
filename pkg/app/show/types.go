package show

import (
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Request represents a single-item decrypt request
type Request struct {
	Target app.KeychainTarget
	UUID   string
}

// Response carries one decrypted item. Payload is the parsed plaintext JSON, or
// the plaintext string when it is not JSON.
type Response struct {
	Item      app.ItemSummary `json:"item" yaml:"item"`
	Payload   interface{}     `json:"payload" yaml:"payload"`
	Plaintext []byte          `json:"-" yaml:"-"`
}
