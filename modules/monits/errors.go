package monits

import (
	"errors"
	"strconv"

	"github.com/dmitrymomot/monitio/handler"
	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/notifications"
)

// httpError maps domain errors to their HTTP answer. Missing and foreign
// records are both not found.
func httpError(err error) error {
	switch {
	case errors.Is(err, live.ErrForbidden):
		return handler.ErrForbidden.Wrap(err)
	case errors.Is(err, notifications.ErrNotificationNotFound):
		return handler.ErrNotFound.Wrap(err)
	case errors.Is(err, notifications.ErrMissingID):
		return handler.ErrBadRequest.Wrap(err)
	default:
		return err
	}
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return "invalid query parameter " + strconv.Quote(string(e))
}
