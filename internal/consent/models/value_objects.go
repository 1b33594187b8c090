package models

// Provider names a third-party script the gate can load. Providers double as
// consent categories: analytics consent covers the tag manager, marketing
// consent covers the pixel.
type Provider string

const (
	ProviderAnalytics Provider = "analytics"
	ProviderMarketing Provider = "marketing"
)

// Providers lists every provider in evaluation order.
var Providers = []Provider{ProviderAnalytics, ProviderMarketing}

func (p Provider) String() string {
	return string(p)
}

// LoadState tracks a provider's script for one page load.
type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
)

// ProviderStatus is a point-in-time view of one provider on a page.
type ProviderStatus struct {
	Provider   Provider  `json:"provider"`
	State      LoadState `json:"state"`
	Configured bool      `json:"configured"`
}
