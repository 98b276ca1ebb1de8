// Package live decides who may listen on a notification channel and moves
// events from the pub/sub bus to an open streaming connection.
//
// A connection attempt goes through the Authorizer first. Anonymous visitors
// may only listen on AnonymousChannel, and only while anonymous access is
// enabled; an authenticated user may only listen on the channel named after
// their username. Everything else is denied.
//
//	authz := live.NewAuthorizer(live.WithAnonymous(cfg.AllowAnonymous))
//
//	sub, err := authz.Subscribe(identity, channel)
//	if errors.Is(err, live.ErrForbidden) {
//		// respond 403
//	}
//	defer sub.Close()
//
//	err = feed.Stream(r.Context(), sub, func(ev pubsub.Event) error {
//		return sse.Send(ev)
//	})
//
// Two Feed implementations exist. PushBridge relays bus events until the client
// goes away or the bus fails. TestFeed emits whatever is sitting in a
// PendingQueue exactly once and returns, which keeps a single-threaded test
// server from being held by a long-lived stream.
package live
