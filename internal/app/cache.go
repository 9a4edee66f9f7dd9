package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"tourops/internal/domain"
)

func routeKey(id string) string { return "route:" + id }

// invalidateRoute drops the cached aggregate for a route after any
// write beneath it. Best-effort: a cache failure never fails the write.
func invalidateRoute(ctx context.Context, cache domain.Cache, routeID string) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, routeKey(routeID)); err != nil {
		log.Warn().Err(err).Str("route_id", routeID).Msg("route cache invalidation failed")
	}
}
