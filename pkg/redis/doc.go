// Package redis connects go-redis clients from environment-driven
// configuration, with startup retries and a readiness probe. It is the
// bootstrap layer under the Redis-backed session store, which only wants a
// working client handed to it.
//
//   - Config is populated from environment variables via
//     github.com/caarlos0/env; REDIS_URL carries the connection URL.
//
//   - Connect parses the URL, dials with a growing backoff within
//     ConnectTimeout and verifies the client with a ping.
//
//   - Healthcheck wraps the client as a func(context.Context) error for
//     health endpoints.
//
// # Usage
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		panic(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		panic(err)
//	}
//	defer client.Close()
//
//	store := redisstore.New(client)
//
// Failures wrap sentinel errors such as ErrRedisNotReady with errors.Join;
// match them with errors.Is.
package redis
