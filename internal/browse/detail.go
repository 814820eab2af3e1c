package browse

import (
	"context"
	"errors"

	"github.com/desertthunder/explorer/internal/models"
	"github.com/desertthunder/explorer/internal/shared"
)

// ResolveDetail returns the navigator for a detail route.
//
// A matching hand-off is used as is. Otherwise the source's fallback is tried; if that fails
// the error wraps [shared.ErrMissingContext] and the caller should return to the listing.
func ResolveDetail(ctx context.Context, src Source, kind models.Kind, id string, h *Handoff) (*Navigator, error) {
	if !src.Variant().Owns(kind) {
		return nil, shared.ErrMissingContext
	}
	if h != nil && h.Matches(kind, id) {
		return NewNavigator(*h, src.Variant()), nil
	}

	fallback, err := src.Fallback(ctx, kind, id)
	if err != nil {
		if errors.Is(err, shared.ErrMissingContext) {
			return nil, err
		}
		return nil, errors.Join(shared.ErrMissingContext, err)
	}
	return NewNavigator(fallback, src.Variant()), nil
}
