package didresolve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"registrar/pkg/domain"
)

// CachedResolver fronts a Resolver with a Redis cache. Resolution is on the
// hot path of every service mutation for non-custodied DIDs, and documents
// change rarely, so a short TTL takes most of the latency out. Cache failures
// fall through to the inner resolver.
type CachedResolver struct {
	inner  Resolver
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedResolver(inner Resolver, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(did domain.DID) string {
	return "didresolve:doc:" + did.String()
}

func (r *CachedResolver) Resolve(ctx context.Context, did domain.DID) (*domain.DIDDocument, error) {
	raw, err := r.client.Get(ctx, cacheKey(did)).Bytes()
	if err == nil {
		var doc domain.DIDDocument
		if err := json.Unmarshal(raw, &doc); err == nil {
			return &doc, nil
		}
		// Corrupt entry, drop it and resolve fresh.
		r.client.Del(ctx, cacheKey(did))
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WarnContext(ctx, "did cache read failed",
			"did", did.String(), "error", err)
	}

	doc, err := r.inner.Resolve(ctx, did)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(doc); err == nil {
		if err := r.client.Set(ctx, cacheKey(did), raw, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "did cache write failed",
				"did", did.String(), "error", err)
		}
	}
	return doc, nil
}

// Invalidate drops the cached document, used after this registrar itself
// mutates the DID document.
func (r *CachedResolver) Invalidate(ctx context.Context, did domain.DID) {
	if err := r.client.Del(ctx, cacheKey(did)).Err(); err != nil {
		r.logger.WarnContext(ctx, "did cache invalidate failed",
			"did", did.String(), "error", err)
	}
}
