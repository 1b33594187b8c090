package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	dErrors "cookieconsent/pkg/domain-errors"
)

// DecisionRequest is the inbound cookie-consent payload. Fields are kept raw
// so each one can be checked independently: a JSON boolean is taken as-is,
// falsy literals (absent, null, "", numeric zero) mean declined, and any
// other value is rejected.
type DecisionRequest struct {
	Analytics json.RawMessage `json:"analytics"`
	Marketing json.RawMessage `json:"marketing"`

	record Record
}

// Validate parses both fields and caches the resulting record.
func (r *DecisionRequest) Validate() error {
	analytics, err := parseFlag("analytics", r.Analytics)
	if err != nil {
		return err
	}
	marketing, err := parseFlag("marketing", r.Marketing)
	if err != nil {
		return err
	}
	r.record = Record{Analytics: analytics, Marketing: marketing}
	return nil
}

// Record returns the decision. Only meaningful after Validate succeeds.
func (r *DecisionRequest) Record() Record {
	return r.record
}

func parseFlag(field string, raw json.RawMessage) (bool, error) {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", `""`:
		return false, nil
	case "true":
		return true, nil
	}
	if isZeroNumber(trimmed) {
		return false, nil
	}
	return false, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a boolean", field))
}

// isZeroNumber reports whether raw is a JSON number equal to zero.
func isZeroNumber(raw []byte) bool {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return false
	}
	if !json.Valid(raw) {
		return false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}

// MountRequest carries the host element's data attributes. All fields are
// optional; missing identifiers fall back to service configuration.
type MountRequest struct {
	Attributes map[string]string `json:"attributes"`
}

// Binding extracts provider identifiers from the attributes.
func (r *MountRequest) Binding() Binding {
	return BindingFromAttributes(r.Attributes)
}
