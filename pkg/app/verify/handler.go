package verify

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Handle unlocks the keychain and summarises what it holds
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Verifying keychain: %s", req.Target.Path))
	kc, err := ctx.OpenKeychain(req.Target)
	if err != nil {
		return nil, err
	}
	defer kc.Lock()

	items, err := kc.Items()
	if err != nil {
		return nil, app.WrapError("failed to list items", err)
	}

	response := &Response{
		Path:       kc.Path(),
		Format:     string(kc.Format()),
		State:      kc.State().String(),
		Items:      len(items),
		Categories: make(map[string]int),
		UnlockTime: time.Since(startTime),
	}
	for _, item := range items {
		if item.Trashed {
			response.Trashed++
		}
		response.Categories[item.Category]++
	}

	ctx.Progress("Complete", 100)
	ctx.Log(fmt.Sprintf("Verification completed in %v", response.UnlockTime))
	return response, nil
}
