package loader

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cookieconsent/internal/consent/models"
)

// AnalyticsScriptURL is the tag manager bootstrap; the account id is appended
// as the id query parameter.
const AnalyticsScriptURL = "https://www.googletagmanager.com/gtag/js"

// Analytics loads the tag manager and configures it once the script is in.
type Analytics struct {
	now func() time.Time
}

// NewAnalytics constructs the analytics provider.
func NewAnalytics() *Analytics {
	return &Analytics{now: time.Now}
}

func (a *Analytics) Name() models.Provider {
	return models.ProviderAnalytics
}

func (a *Analytics) Granted(record models.Record) bool {
	return record.Grants(a.Name())
}

// Load injects the tag manager script and, after it loads, queues the js and
// config commands. The result channel carries the script load error, if any.
func (a *Analytics) Load(ctx context.Context, doc Document, accountID string) <-chan error {
	src := AnalyticsScriptURL + "?id=" + url.QueryEscape(accountID)
	loaded := doc.InjectScript(ctx, Script{Src: src, Async: true, Provider: models.ProviderAnalytics})

	done := make(chan error, 1)
	go func() {
		if err := <-loaded; err != nil {
			done <- fmt.Errorf("load analytics script: %w", err)
			return
		}
		doc.Call("gtag", "js", a.now())
		doc.Call("gtag", "config", accountID, map[string]any{
			"anonymize_ip": true,
			"cookie_flags": "SameSite=None;Secure",
		})
		done <- nil
	}()
	return done
}
