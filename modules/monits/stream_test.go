package monits_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/monitio/modules/monits"
	"github.com/dmitrymomot/monitio/pkg/jwt"
	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/notifications"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

func streamRouter(authorizer *live.Authorizer, feed live.Feed) http.Handler {
	return withTestUser(monits.Router(monits.RouterOptions{
		Stream: monits.NewStreamService(authorizer, feed, monits.WithStreamIdentity(headerIdentity)),
	}))
}

func TestStream_Authorization(t *testing.T) {
	t.Parallel()

	queue := live.NewPendingQueue()
	feed := live.NewTestFeed(queue)

	tests := []struct {
		name      string
		anonymous bool
		user      string
		path      string
		want      int
	}{
		{name: "anonymous default channel", anonymous: true, path: "/channel/", want: http.StatusOK},
		{name: "anonymous explicit channel", anonymous: true, path: "/channel/" + live.AnonymousChannel, want: http.StatusOK},
		{name: "anonymous disabled", anonymous: false, path: "/channel/", want: http.StatusForbidden},
		{name: "anonymous on user channel", anonymous: true, path: "/channel/alice", want: http.StatusForbidden},
		{name: "own channel", anonymous: true, user: "alice", path: "/channel/alice", want: http.StatusOK},
		{name: "foreign channel", anonymous: true, user: "alice", path: "/channel/bob", want: http.StatusForbidden},
		{name: "user on anonymous channel", anonymous: true, user: "alice", path: "/channel/", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := streamRouter(live.NewAuthorizer(live.WithAnonymous(tt.anonymous)), feed)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.Header.Set("X-Test-User", tt.user)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.NotContains(t, rec.Header().Get("Content-Type"), "text/event-stream")
			}
		})
	}
}

func TestStream_TestFeed(t *testing.T) {
	t.Parallel()

	queue := live.NewPendingQueue()
	router := streamRouter(live.NewAuthorizer(), live.NewTestFeed(queue))

	queue.Enqueue("first", "second")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/channel/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	body := rec.Body.String()
	assert.Contains(t, body, "event: message\ndata: first\n")
	assert.Contains(t, body, "event: message\ndata: second\n")
	assert.Less(t, strings.Index(body, "data: first"), strings.Index(body, "data: second"))
	assert.Zero(t, queue.Len())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/channel/", nil))
	assert.NotContains(t, rec.Body.String(), "data: first")
}

func TestStream_QueueDelivery(t *testing.T) {
	t.Parallel()

	queue := live.NewPendingQueue()
	manager := notifications.NewManager(notifications.NewMemoryStorage(), notifications.NewQueueDeliverer(queue))
	router := streamRouter(live.NewAuthorizer(), live.NewTestFeed(queue))

	_, err := manager.Send(context.Background(), notifications.Notification{Owner: "alice", Message: "queued"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/channel/alice", nil)
	req.Header.Set("X-Test-User", "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"queued"`)
}

func TestStream_PushBridge(t *testing.T) {
	t.Parallel()

	bus := pubsub.NewMemoryBus(8)
	t.Cleanup(func() { _ = bus.Close() })

	signer, err := jwt.NewFromString("test-secret")
	require.NoError(t, err)
	token, err := signer.Issue("alice", time.Minute)
	require.NoError(t, err)

	router := jwt.Middleware(signer)(monits.Router(monits.RouterOptions{
		Stream: monits.NewStreamService(live.NewAuthorizer(), live.NewPushBridge(bus)),
	}))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/channel/alice", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		for _, ch := range bus.Channels() {
			if ch == "alice" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(ctx, "bob", pubsub.NewEvent("not for alice")))
	require.NoError(t, bus.Publish(ctx, "alice", pubsub.Event{Type: "alert", Data: "line one\nline two"}))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			if strings.HasPrefix(line, "event:") || strings.HasPrefix(line, "data:") {
				got = append(got, line)
			}
		case <-timeout:
			require.FailNow(t, "no event received", "got %v", got)
		}
	}

	assert.Equal(t, []string{"event: alert", "data: line one", "data: line two"}, got)

	cancel()
	require.Eventually(t, func() bool { return len(bus.Channels()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestStream_JWTDenied(t *testing.T) {
	t.Parallel()

	signer, err := jwt.NewFromString("test-secret")
	require.NoError(t, err)
	token, err := signer.Issue("alice", time.Minute)
	require.NoError(t, err)

	router := jwt.Middleware(signer)(monits.Router(monits.RouterOptions{
		Stream: monits.NewStreamService(live.NewAuthorizer(), live.NewTestFeed(live.NewPendingQueue())),
	}))

	req := httptest.NewRequest(http.MethodGet, "/channel/bob", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
