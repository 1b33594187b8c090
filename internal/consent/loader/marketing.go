package loader

import (
	"context"

	"cookieconsent/internal/consent/models"
)

// MarketingScriptURL is the pixel bootstrap.
const MarketingScriptURL = "https://connect.facebook.net/en_US/fbevents.js"

// Marketing loads the pixel. The bootstrap queues commands until its script
// arrives, so the provider counts as loaded as soon as it is injected.
type Marketing struct{}

// NewMarketing constructs the marketing provider.
func NewMarketing() *Marketing {
	return &Marketing{}
}

func (m *Marketing) Name() models.Provider {
	return models.ProviderMarketing
}

func (m *Marketing) Granted(record models.Record) bool {
	return record.Grants(m.Name())
}

// Load never reports failure; bootstrap load errors are swallowed.
func (m *Marketing) Load(ctx context.Context, doc Document, accountID string) <-chan error {
	_ = doc.InjectScript(ctx, Script{Src: MarketingScriptURL, Async: true, Provider: models.ProviderMarketing})
	doc.Call("fbq", "init", accountID)
	doc.Call("fbq", "track", "PageView")

	done := make(chan error, 1)
	done <- nil
	return done
}
