package loader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookieconsent/internal/consent/models"
)

func TestPageInjectScriptResolvesOnce(t *testing.T) {
	errBoom := errors.New("boom")
	page := NewPage(StaticFetcher{Err: errBoom})

	done := page.InjectScript(context.Background(), Script{Src: "https://example.test/a.js", Async: true})

	select {
	case err := <-done:
		require.ErrorIs(t, err, errBoom)
	case <-time.After(time.Second):
		t.Fatal("load did not resolve")
	}
	assert.Len(t, page.Scripts(), 1)
}

func TestPageInjectScriptIgnoresCancellation(t *testing.T) {
	release := make(chan struct{})
	page := NewPage(FetcherFunc(func(ctx context.Context, _ string) error {
		<-release
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := page.InjectScript(ctx, Script{Src: "https://example.test/a.js"})
	cancel()
	close(release)

	require.NoError(t, <-done)
}

func TestPageRecordsCallsPerGlobal(t *testing.T) {
	page := NewPage(StaticFetcher{})
	page.Call("gtag", "js", "now")
	page.Call("fbq", "init", "PIXEL")
	page.Call("gtag", "config", "G-1")

	assert.Equal(t, [][]any{{"js", "now"}, {"config", "G-1"}}, page.Calls("gtag"))
	assert.Equal(t, [][]any{{"init", "PIXEL"}}, page.Calls("fbq"))
	assert.Nil(t, page.Calls("dataLayer"))
}

func TestPageRender(t *testing.T) {
	page := NewPage(StaticFetcher{})
	page.InjectScript(context.Background(), Script{Src: AnalyticsScriptURL + "?id=G-1&x=1", Async: true, Provider: models.ProviderAnalytics})
	page.Call("gtag", "js", time.Date(2026, 10, 19, 8, 30, 5, 0, time.UTC))
	page.Call("gtag", "config", "G-1", map[string]any{"anonymize_ip": true, "cookie_flags": "SameSite=None;Secure"})
	page.Call("fbq", "init", "</script><b>")

	var out strings.Builder
	require.NoError(t, page.Render(&out))
	html := out.String()

	assert.Contains(t, html, `<script async src="https://www.googletagmanager.com/gtag/js?id=G-1&amp;x=1" data-provider="analytics"></script>`)
	assert.Contains(t, html, `("js",new Date("2026-10-19T08:30:05Z"));`)
	assert.Contains(t, html, `("config","G-1",{"anonymize_ip":true,"cookie_flags":"SameSite=None;Secure"});`)
	assert.Contains(t, html, "window.gtag=window.gtag||function()")
	assert.Contains(t, html, "if(!window.fbq)")
	assert.Equal(t, 1, strings.Count(html, "window.gtag=window.gtag"))
	assert.NotContains(t, html, "</script><b>")
	assert.Contains(t, html, `("init","\u003c/script\u003e\u003cb\u003e");`)
}

func TestPageRenderEmpty(t *testing.T) {
	var out strings.Builder
	require.NoError(t, NewPage(StaticFetcher{}).Render(&out))
	assert.Empty(t, out.String())
}
