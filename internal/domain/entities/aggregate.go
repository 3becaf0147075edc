package entities

import "time"

// HospitalInfo is the unified per-hospital aggregate consumed downstream:
// the registry record joined with its matched non-payment items, resolved
// departments, parsed coordinates, and the operating-hours profile when a
// stable identifier made the detail lookup possible. Rebuilt wholesale on
// every fetch cycle, never mutated in place.
type HospitalInfo struct {
	Ykiho        string `json:"ykiho"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	FacilityType string `json:"facility_type"`

	// Latitude/Longitude default to 0.0 when the raw position strings are
	// absent or unparseable; (0, 0) means "no location", not a real point.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Departments holds resolved category names, DeptCodes the raw
	// registry codes the record carried (comma-split, trimmed).
	Departments []string `json:"departments"`
	DeptCodes   []string `json:"dept_codes"`

	Items []NonPaymentItem `json:"items"`

	TimeInfo *HospitalTimeInfo `json:"time_info,omitempty"`

	// StateText is the display text computed at build time. The state
	// itself stays re-derivable from TimeInfo via StateAt.
	StateText string `json:"state_text"`
}

// Equal reports aggregate identity, which is defined solely by the stable
// identifier.
func (h *HospitalInfo) Equal(other *HospitalInfo) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.Ykiho != "" && h.Ykiho == other.Ykiho
}

// HasLocation reports whether the aggregate carries usable coordinates.
func (h *HospitalInfo) HasLocation() bool {
	return h.Latitude != 0 || h.Longitude != 0
}

// StateAt re-derives the operating state from the stored time profile.
func (h *HospitalInfo) StateAt(now time.Time) OperationState {
	return h.TimeInfo.StateAt(now)
}
