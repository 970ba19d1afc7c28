package show

import (
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/services"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Handle unlocks the keychain and decrypts the requested item
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kc, err := ctx.OpenKeychain(req.Target)
	if err != nil {
		return nil, err
	}
	defer kc.Lock()

	recovered, err := services.NewRecoveryService(ctx.Logger).RecoverOne(ctx, kc, req.UUID)
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("failed to show item %s", req.UUID), err)
	}

	response := &Response{
		Item:      app.NewItemSummary(recovered.Item),
		Plaintext: recovered.Plaintext,
	}
	if err := json.Unmarshal(recovered.Plaintext, &response.Payload); err != nil {
		response.Payload = string(recovered.Plaintext)
	}
	return response, nil
}
