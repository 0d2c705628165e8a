// Package redis connects to Redis with retry and exposes a health probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	health.Readiness(log, redis.Healthcheck(client))
//
// REDIS_URL accepts redis:// and rediss:// URLs. Connect retries the initial
// ping REDIS_RETRY_ATTEMPTS times, doubling REDIS_RETRY_INTERVAL between
// attempts, within REDIS_CONNECT_TIMEOUT.
package redis
