package models

import (
	"strings"
	"time"
)

// Client-local storage keys. The values are read back by embedding
// applications, so the names are part of the external contract.
const (
	KeyConsent     = "cookie_consent"
	KeyConsentDate = "cookie_consent_date"
)

// Host signal names.
const (
	EventCookieConsent = "cookie-consent"
	EventCloseBanner   = "close_banner"
	AccessorName       = "getCookieConsent"
)

// Host element attributes carrying provider account identifiers.
const (
	AttrAnalyticsID = "data-ga-id"
	AttrMarketingID = "data-meta-pixel-id"
)

// timestampLayout matches ECMAScript Date.prototype.toISOString output.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is a client's consent decision. It is replaced wholesale on every
// new decision; fields are never merged.
type Record struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// Grants reports whether the record permits the provider's category.
func (r Record) Grants(p Provider) bool {
	switch p {
	case ProviderAnalytics:
		return r.Analytics
	case ProviderMarketing:
		return r.Marketing
	default:
		return false
	}
}

// Binding carries the provider account identifiers read from the host element
// when a page mounts. An empty identifier disables that provider.
type Binding struct {
	AnalyticsID string `json:"analytics_id,omitempty"`
	MarketingID string `json:"marketing_id,omitempty"`
}

// BindingFromAttributes reads identifiers from host element data attributes.
// Whitespace-only values count as absent.
func BindingFromAttributes(attrs map[string]string) Binding {
	return Binding{
		AnalyticsID: strings.TrimSpace(attrs[AttrAnalyticsID]),
		MarketingID: strings.TrimSpace(attrs[AttrMarketingID]),
	}
}

// Or fills identifiers missing from b with those from fallback.
func (b Binding) Or(fallback Binding) Binding {
	if b.AnalyticsID == "" {
		b.AnalyticsID = fallback.AnalyticsID
	}
	if b.MarketingID == "" {
		b.MarketingID = fallback.MarketingID
	}
	return b
}

// AccountID returns the configured identifier for the provider, or "".
func (b Binding) AccountID(p Provider) string {
	switch p {
	case ProviderAnalytics:
		return b.AnalyticsID
	case ProviderMarketing:
		return b.MarketingID
	default:
		return ""
	}
}

// FormatTimestamp renders t the way the consent date is persisted.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Event is an outbound signal queued for the host view.
type Event struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}
