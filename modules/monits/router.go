package monits

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services to mount. Nil services are skipped.
type RouterOptions struct {
	Stream   Mountable
	Messages Mountable
}

// Router mounts the live stream under /channel and the notification
// endpoints under /messages.
//
//	r := chi.NewRouter()
//	r.Mount("/", monits.Router(monits.RouterOptions{
//		Stream:   monits.NewStreamService(authorizer, feed),
//		Messages: monits.NewMessageService(manager),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Stream != nil {
		r.Mount("/channel", opts.Stream.Handle())
	}
	if opts.Messages != nil {
		r.Mount("/messages", opts.Messages.Handle())
	}

	return r
}
