// Package redis connects monitio to the Redis server used as the live-push
// pub/sub bus.
//
// Connect retries until the server answers a PING, and Healthcheck plugs the
// client into the readiness probe:
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	bus := pubsub.NewRedisBus(client)
//
// Errors wrap the underlying go-redis error with errors.Join, so both the
// sentinel (ErrRedisNotReady, ...) and the cause can be matched with errors.Is.
package redis
