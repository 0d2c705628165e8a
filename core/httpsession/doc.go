// Package httpsession provides container-style server sessions: a random id
// in a cookie, typed attributes kept in a Store, an idle timeout and explicit
// invalidation.
//
//	m := httpsession.NewFromConfig(httpsession.NewMemoryStore[Data](), cfg)
//	sess, err := m.GetOrCreate(ctx, w, r) // create on demand
//	sess, err = m.Get(ctx, r)            // ErrNoSession when absent
//	err = m.Invalidate(ctx, w, r)        // drop entry and cookie
//
// Stores: NewMemoryStore, with StartCleanup sweeping idle entries, and
// NewRedisStore, which relies on key TTLs.
package httpsession
