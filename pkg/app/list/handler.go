package list

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Handle unlocks the keychain and lists item metadata. Nothing is decrypted
// beyond what unlocking already requires.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

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
		Path:   kc.Path(),
		Format: string(kc.Format()),
		Items:  []app.ItemSummary{},
	}
	for _, item := range items {
		if matches(req, item) {
			response.Items = append(response.Items, app.NewItemSummary(item))
		}
	}
	sort.SliceStable(response.Items, func(i, j int) bool {
		if response.Items[i].Title != response.Items[j].Title {
			return response.Items[i].Title < response.Items[j].Title
		}
		return response.Items[i].UUID < response.Items[j].UUID
	})
	response.Total = len(response.Items)

	ctx.Log(fmt.Sprintf("Listed %d of %d items", response.Total, len(items)))
	return response, nil
}

// matches applies the request filters; title patterns are case-insensitive
func matches(req *Request, item types.Item) bool {
	if item.Trashed && !req.IncludeTrashed {
		return false
	}
	if req.Category != "" && !strings.EqualFold(req.Category, item.Category) {
		return false
	}
	if req.TitlePattern != "" {
		matched, _ := filepath.Match(strings.ToLower(req.TitlePattern), strings.ToLower(item.Title))
		if !matched {
			return false
		}
	}
	return true
}
