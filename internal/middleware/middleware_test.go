package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/walletwise/internal/auth"
	"github.com/mmynk/walletwise/internal/models"
)

type ping struct{}

// capture records the context user the wrapped handler saw.
type capture struct {
	called bool
	userID string
	email  string
}

func (c *capture) handler(err error) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		c.called = true
		c.userID = GetUserID(ctx)
		c.email = GetEmail(ctx)
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&ping{}), nil
	}
}

func requestWithAuth(header string) *connect.Request[ping] {
	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{name: "valid token", header: "Bearer " + token},
		{name: "scheme is case-insensitive", header: "bearer " + token},
		{name: "missing header", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + token, wantCode: connect.CodeUnauthenticated},
		{name: "empty token", header: "Bearer ", wantCode: connect.CodeUnauthenticated},
		{name: "bad token", header: "Bearer nope", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			_, err := RequireAuth(jwtManager)(c.handler(nil))(context.Background(), requestWithAuth(tt.header))
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				assert.False(t, c.called)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", c.userID)
			assert.Equal(t, "alice@example.com", c.email)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)

	for header, wantUser := range map[string]string{
		"":                "",
		"Bearer garbage":  "",
		"Bearer " + token: "user-1",
	} {
		c := &capture{}
		_, err := OptionalAuth(jwtManager)(c.handler(nil))(context.Background(), requestWithAuth(header))
		require.NoError(t, err)
		assert.True(t, c.called)
		assert.Equal(t, wantUser, c.userID, "header %q", header)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithUser(context.Background(), "user-1", "alice@example.com")

	c := &capture{}
	_, err := LoggingInterceptor(logger)(c.handler(nil))(ctx, requestWithAuth(""))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RPC ok")
	assert.Contains(t, buf.String(), "user_id=user-1")

	buf.Reset()
	notFound := connect.NewError(connect.CodeNotFound, errors.New("wallet missing"))
	_, err = LoggingInterceptor(logger)(c.handler(notFound))(ctx, requestWithAuth(""))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=not_found")

	buf.Reset()
	_, err = LoggingInterceptor(logger)(c.handler(errors.New("boom")))(ctx, requestWithAuth(""))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	c := &capture{}
	interceptor := m.Interceptor()
	_, _ = interceptor(c.handler(nil))(context.Background(), requestWithAuth(""))
	_, _ = interceptor(c.handler(nil))(context.Background(), requestWithAuth(""))
	_, _ = interceptor(c.handler(connect.NewError(connect.CodeNotFound, errors.New("x"))))(context.Background(), requestWithAuth(""))

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	var observed uint64
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch mf.GetName() {
			case "walletwise_rpc_requests_total":
				for _, label := range metric.GetLabel() {
					if label.GetName() == "code" {
						counts[label.GetValue()] = metric.GetCounter().GetValue()
					}
				}
			case "walletwise_rpc_duration_seconds":
				observed += metric.GetHistogram().GetSampleCount()
			}
		}
	}

	assert.Equal(t, map[string]float64{"ok": 2, "not_found": 1}, counts)
	assert.Equal(t, uint64(3), observed)
}
