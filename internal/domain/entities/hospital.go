package entities

import "strings"

// Hospital is one record from the hospital registry. Immutable after
// construction; a fresh set is built per fetch cycle.
type Hospital struct {
	// Ykiho is the registry-issued stable identifier. It is required for
	// the operating-hours detail lookup; a record without it can still be
	// listed but never enriched with hours.
	Ykiho        string `json:"ykiho"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Region       string `json:"region"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
	Phone        string `json:"phone"`
	// DeptCodes is the raw comma-separated registry department-code string.
	DeptCodes    string `json:"dept_codes"`
	FacilityType string `json:"facility_type"`
	// PosX and PosY are the raw position strings (longitude, latitude).
	PosX string `json:"pos_x"`
	PosY string `json:"pos_y"`
}

// JoinKey correlates hospital records with their non-payment items. The
// registry and the non-payment endpoint share no stable foreign key, so the
// key prefers the ykiho when both sides carry one and otherwise falls back
// to the normalized display name. The fallback is lossy: two hospitals with
// the same name collapse into one bucket, a documented upstream limitation.
type JoinKey string

// JoinKeyFor builds the join key for an (identifier, name) pair.
func JoinKeyFor(ykiho, name string) JoinKey {
	if ykiho != "" {
		return JoinKey("id:" + ykiho)
	}
	normalized := NormalizeName(name)
	if normalized == "" {
		return ""
	}
	return JoinKey("name:" + normalized)
}

// NameJoinKey builds the name-fallback key directly. Non-payment items only
// ever carry a display name, so the primary join always runs on this form.
func NameJoinKey(name string) JoinKey {
	normalized := NormalizeName(name)
	if normalized == "" {
		return ""
	}
	return JoinKey("name:" + normalized)
}

// NormalizeName canonicalizes a hospital display name for joining: trimmed,
// inner whitespace collapsed.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
