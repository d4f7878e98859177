package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const getMeOK = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"arb","username":"arb_bot"}}`

// fakeBotAPI answers getMe and hands every other method to handle.
func fakeBotAPI(handle http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(getMeOK))
			return
		}
		handle(w, r)
	}))
}

func writeSent(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-10042,"type":"channel"}}}`))
}

func TestTelegramNotifier_Send(t *testing.T) {
	var (
		gotPath string
		gotForm map[string]string
	)
	srv := fakeBotAPI(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"chat_id":    r.PostForm.Get("chat_id"),
			"text":       r.PostForm.Get("text"),
			"parse_mode": r.PostForm.Get("parse_mode"),
		}
		writeSent(w)
	})
	defer srv.Close()

	n := NewTelegramNotifier("123:abc", "-10042", WithTelegramBaseURL(srv.URL), WithTelegramHTTPClient(srv.Client()))
	err := n.Send(context.Background(), "📊 TON/USDT: 5.000 $")
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, map[string]string{
		"chat_id":    "-10042",
		"text":       "📊 TON/USDT: 5.000 $",
		"parse_mode": "HTML",
	}, gotForm)
}

func TestTelegramNotifier_LogsInOnce(t *testing.T) {
	var getMe, sent atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			getMe.Add(1)
			_, _ = w.Write([]byte(getMeOK))
			return
		}
		sent.Add(1)
		writeSent(w)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("t", "1", WithTelegramBaseURL(srv.URL))
	for i := 0; i < 3; i++ {
		require.NoError(t, n.Send(context.Background(), "hello"))
	}
	assert.Equal(t, int32(1), getMe.Load())
	assert.Equal(t, int32(3), sent.Load())
}

func TestTelegramNotifier_SendErrors(t *testing.T) {
	testCases := []struct {
		name   string
		server func() *httptest.Server
		ctx    func() context.Context
	}{
		{
			name: "login rejected",
			server: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
				}))
			},
			ctx: context.Background,
		},
		{
			name: "send rejected",
			server: func() *httptest.Server {
				return fakeBotAPI(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				})
			},
			ctx: context.Background,
		},
		{
			name: "transport failure",
			server: func() *httptest.Server {
				srv := httptest.NewServer(http.NotFoundHandler())
				srv.Close()
				return srv
			},
			ctx: context.Background,
		},
		{
			name: "cancelled context",
			server: func() *httptest.Server {
				return fakeBotAPI(func(w http.ResponseWriter, r *http.Request) {
					writeSent(w)
				})
			},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := tc.server()
			defer srv.Close()

			n := NewTelegramNotifier("secret-token", "1", WithTelegramBaseURL(srv.URL))
			err := n.Send(tc.ctx(), "hello")
			require.Error(t, err)

			var notifyErr *NotifyError
			assert.ErrorAs(t, err, &notifyErr)
			assert.NotContains(t, err.Error(), "secret-token")
		})
	}
}

func TestTelegramNotifier_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := fakeBotAPI(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeSent(w)
	})
	defer srv.Close()

	n := NewTelegramNotifier("t", "1", WithTelegramBaseURL(srv.URL), WithTelegramRate(time.Hour, 1))
	require.NoError(t, n.Send(context.Background(), "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := n.Send(ctx, "second")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func TestBestEffort(t *testing.T) {
	n := &MockNotifier{}
	n.On("Send", mock.Anything, "ok").Return(nil)
	n.On("Send", mock.Anything, "lost").Return(&NotifyError{Channel: "test", Err: errors.New("down")})

	assert.True(t, BestEffort(context.Background(), n, "ok"))
	assert.NotPanics(t, func() {
		assert.False(t, BestEffort(context.Background(), n, "lost"))
	})
	n.AssertNumberOfCalls(t, "Send", 2)
}

func TestConsoleNotifier(t *testing.T) {
	assert.NoError(t, ConsoleNotifier{}.Send(context.Background(), "hello"))
}
