// Package tmstore keeps translation-memory snapshots in Redis.
//
// A snapshot is a resource.Set stored as a Redis hash under
// "<prefix>:<name>": every field is a record hash key and every value the
// JSON encoded record. Snapshots let a localization run reuse the pool
// assembled by an earlier run without re-reading the XLIFF tree, and let
// the new strings of one run be picked up by another.
//
// Connect with retries, then wrap the client:
//
//	client, err := tmstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := tmstore.New(client, tmstore.WithPrefix(cfg.Prefix))
//	if err := store.Save(ctx, "pool", pool); err != nil {
//		return err
//	}
//	pool, err := store.Load(ctx, "pool", "en-US")
//
// Configuration fields can be populated from environment variables via
// github.com/caarlos0/env.
package tmstore
