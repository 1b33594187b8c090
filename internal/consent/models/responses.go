package models

// MountResponse describes a freshly mounted page.
type MountResponse struct {
	PageID    string           `json:"page_id"`
	Consent   *Record          `json:"consent"`
	Events    []Event          `json:"events"`
	Providers []ProviderStatus `json:"providers"`
}

// DecisionResponse reports the stored decision and the resulting page state.
type DecisionResponse struct {
	Consent   Record           `json:"consent"`
	Events    []Event          `json:"events"`
	Providers []ProviderStatus `json:"providers"`
}

// EventsResponse carries drained outbound signals.
type EventsResponse struct {
	Events []Event `json:"events"`
}

// AccessorResponse is the result of the exposed consent accessor. Consent is
// null when the client has not decided yet.
type AccessorResponse struct {
	Consent *Record `json:"consent"`
}
