package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// DefaultWorkers is the decrypt parallelism used when RecoverOptions.Workers is unset
const DefaultWorkers = 4

// RecoverOptions controls a bulk recovery
type RecoverOptions struct {
	// Workers bounds the number of items decrypted at once
	Workers int

	// SkipFailed keeps going past items that fail to decrypt, recording their error
	SkipFailed bool
}

// RecoveryService decrypts items of an unlocked keychain
type RecoveryService struct {
	logger zerolog.Logger
}

// NewRecoveryService creates a new recovery service
func NewRecoveryService(logger zerolog.Logger) *RecoveryService {
	return &RecoveryService{logger: logger}
}

// RecoverAll decrypts every item of kc, which must already be unlocked. Without
// SkipFailed the first failure cancels the remaining work and no results are returned.
// Results are ordered by title, then UUID.
func (rs *RecoveryService) RecoverAll(ctx context.Context, kc interfaces.Keychain, opts RecoverOptions) ([]types.RecoveredItem, error) {
	if state := kc.State(); state != types.StateUnlocked {
		return nil, fmt.Errorf("%w: cannot recover items while %s", types.ErrLocked, state)
	}
	items, err := kc.Items()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]types.RecoveredItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			plaintext, err := kc.Decrypt(item)
			if err != nil {
				if !opts.SkipFailed {
					return fmt.Errorf("failed to recover item %s: %w", item.UUID, err)
				}
				rs.logger.Warn().Err(err).Str("uuid", item.UUID).Str("title", item.Title).Msg("skipping item")
				results[i] = types.RecoveredItem{Item: item, Err: err}
				return nil
			}
			results[i] = types.RecoveredItem{Item: item, Plaintext: plaintext}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortRecovered(results)
	rs.logger.Info().Int("items", len(results)).Int("failed", CountFailed(results)).Msg("recovery complete")
	return results, nil
}

// RecoverOne decrypts a single item looked up by UUID
func (rs *RecoveryService) RecoverOne(ctx context.Context, kc interfaces.Keychain, uuid string) (types.RecoveredItem, error) {
	if err := ctx.Err(); err != nil {
		return types.RecoveredItem{}, err
	}
	item, err := kc.Item(uuid)
	if err != nil {
		return types.RecoveredItem{}, err
	}
	plaintext, err := kc.Decrypt(item)
	if err != nil {
		return types.RecoveredItem{}, fmt.Errorf("failed to recover item %s: %w", item.UUID, err)
	}
	rs.logger.Debug().Str("uuid", item.UUID).Msg("item recovered")
	return types.RecoveredItem{Item: item, Plaintext: plaintext}, nil
}

// SortRecovered orders results by title, then UUID
func SortRecovered(results []types.RecoveredItem) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Item.Title != results[j].Item.Title {
			return results[i].Item.Title < results[j].Item.Title
		}
		return results[i].Item.UUID < results[j].Item.UUID
	})
}

// CountFailed returns how many results carry an error
func CountFailed(results []types.RecoveredItem) int {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}
