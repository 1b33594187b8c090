package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsReturnZeroValuesWhenUnset(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ClientID(ctx))
	assert.Empty(t, PageID(ctx))
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, UserAgent(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestAccessorsRoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithClientID(context.Background(), "client-1")
	ctx = WithPageID(ctx, "page-1")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithClientMetadata(ctx, "10.0.0.7", "Mozilla/5.0")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "client-1", ClientID(ctx))
	assert.Equal(t, "page-1", PageID(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "10.0.0.7", ClientIP(ctx))
	assert.Equal(t, "Mozilla/5.0", UserAgent(ctx))
	assert.Equal(t, fixed, Now(ctx))
}
