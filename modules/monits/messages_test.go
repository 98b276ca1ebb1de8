package monits_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/monitio/modules/monits"
	"github.com/dmitrymomot/monitio/pkg/notifications"
)

type messagesFixture struct {
	manager *notifications.Manager
	router  http.Handler
}

func newMessagesFixture(t *testing.T) messagesFixture {
	t.Helper()

	manager := notifications.NewManager(notifications.NewMemoryStorage(), nil)
	router := monits.Router(monits.RouterOptions{
		Messages: monits.NewMessageService(manager, monits.WithMessageIdentity(headerIdentity)),
	})
	return messagesFixture{manager: manager, router: withTestUser(router)}
}

func (f messagesFixture) send(t *testing.T, owner, message string) notifications.Notification {
	t.Helper()
	n, err := f.manager.Send(context.Background(), notifications.Notification{Owner: owner, Message: message})
	require.NoError(t, err)
	return n
}

func (f messagesFixture) do(method, path, user string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://monitio.test"+path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var ajax = map[string]string{"X-Requested-With": "XMLHttpRequest"}

func TestMessages_AnonymousForbidden(t *testing.T) {
	t.Parallel()

	f := newMessagesFixture(t)
	n := f.send(t, "alice", "hello")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/messages/"},
		{http.MethodGet, "/messages/unread"},
		{http.MethodGet, "/messages/" + n.ID},
		{http.MethodPost, "/messages/" + n.ID + "/read"},
		{http.MethodPost, "/messages/read"},
		{http.MethodPost, "/messages/" + n.ID + "/delete"},
		{http.MethodDelete, "/messages/" + n.ID},
		{http.MethodPost, "/messages/delete"},
		{http.MethodDelete, "/messages/"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := f.do(rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}

	stored, err := f.manager.Get(context.Background(), "alice", n.ID)
	require.NoError(t, err)
	assert.False(t, stored.Read)
}

func TestMessages_Detail(t *testing.T) {
	t.Parallel()

	f := newMessagesFixture(t)
	n := f.send(t, "alice", "hello")

	t.Run("returns record and marks it read", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/"+n.ID, "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got notifications.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, "hello", got.Message)
		assert.True(t, got.Read)

		stored, err := f.manager.Get(context.Background(), "alice", n.ID)
		require.NoError(t, err)
		assert.True(t, stored.Read)
	})

	t.Run("foreign record is not found", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/"+n.ID, "bob", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/does-not-exist", "alice", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMessages_MarkRead(t *testing.T) {
	t.Parallel()

	t.Run("redirects back for browsers", func(t *testing.T) {
		f := newMessagesFixture(t)
		n := f.send(t, "alice", "hello")

		rec := f.do(http.MethodPost, "/messages/"+n.ID+"/read", "alice", map[string]string{
			"Referer": "http://monitio.test/inbox",
		})

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://monitio.test/inbox", rec.Header().Get("Location"))

		stored, err := f.manager.Get(context.Background(), "alice", n.ID)
		require.NoError(t, err)
		assert.True(t, stored.Read)
	})

	t.Run("redirects to root without referer", func(t *testing.T) {
		f := newMessagesFixture(t)
		n := f.send(t, "alice", "hello")

		rec := f.do(http.MethodPost, "/messages/"+n.ID+"/read", "alice", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("empty 200 for ajax", func(t *testing.T) {
		f := newMessagesFixture(t)
		n := f.send(t, "alice", "hello")

		rec := f.do(http.MethodPost, "/messages/"+n.ID+"/read", "alice", ajax)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("foreign record untouched", func(t *testing.T) {
		f := newMessagesFixture(t)
		n := f.send(t, "alice", "hello")

		rec := f.do(http.MethodPost, "/messages/"+n.ID+"/read", "bob", ajax)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		stored, err := f.manager.Get(context.Background(), "alice", n.ID)
		require.NoError(t, err)
		assert.False(t, stored.Read)
	})
}

func TestMessages_MarkAllRead(t *testing.T) {
	t.Parallel()

	f := newMessagesFixture(t)
	f.send(t, "alice", "one")
	f.send(t, "alice", "two")
	f.send(t, "bob", "three")

	rec := f.do(http.MethodPost, "/messages/read", "alice", ajax)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/messages/read", "alice", ajax)
	assert.Equal(t, http.StatusOK, rec.Code)

	aliceUnread, err := f.manager.CountUnread(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, aliceUnread)

	bobUnread, err := f.manager.CountUnread(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bobUnread)
}

func TestMessages_Delete(t *testing.T) {
	t.Parallel()

	t.Run("delete one", func(t *testing.T) {
		f := newMessagesFixture(t)
		n := f.send(t, "alice", "hello")

		rec := f.do(http.MethodDelete, "/messages/"+n.ID, "alice", ajax)
		assert.Equal(t, http.StatusOK, rec.Code)

		_, err := f.manager.Get(context.Background(), "alice", n.ID)
		assert.ErrorIs(t, err, notifications.ErrNotificationNotFound)

		rec = f.do(http.MethodPost, "/messages/"+n.ID+"/delete", "alice", ajax)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete all only touches the caller", func(t *testing.T) {
		f := newMessagesFixture(t)
		f.send(t, "alice", "one")
		f.send(t, "alice", "two")
		kept := f.send(t, "bob", "three")

		rec := f.do(http.MethodPost, "/messages/delete", "alice", nil)
		assert.Equal(t, http.StatusFound, rec.Code)

		list, err := f.manager.List(context.Background(), "alice", notifications.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = f.manager.Get(context.Background(), "bob", kept.ID)
		assert.NoError(t, err)
	})
}

func TestMessages_List(t *testing.T) {
	t.Parallel()

	f := newMessagesFixture(t)
	first := f.send(t, "alice", "one")
	f.send(t, "alice", "two")
	f.send(t, "bob", "three")
	require.NoError(t, f.manager.MarkRead(context.Background(), "alice", first.ID))

	t.Run("all", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/", "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Messages []notifications.Notification `json:"messages"`
			Unread   int                          `json:"unread"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Messages, 2)
		assert.Equal(t, 1, body.Unread)
		for _, m := range body.Messages {
			assert.Equal(t, "alice", m.Owner)
		}
	})

	t.Run("unread only", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/?unread=true", "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Messages []notifications.Notification `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "two", body.Messages[0].Message)
	})

	t.Run("bad query", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/?limit=-1", "alice", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unread count", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/unread", "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"unread":1}`, rec.Body.String())
	})
}
