package entities

// NonPaymentItem is one out-of-pocket (non-covered) priced item reported by
// a hospital. Items reference their hospital by display name only; an item
// with a blank hospital name cannot be joined and is dropped silently.
type NonPaymentItem struct {
	HospitalName string `json:"hospital_name"`
	ItemCode     string `json:"item_code"`
	// Name is the canonical short item name; Description is the fuller
	// per-hospital wording. Either may be blank.
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// MinPrice and MaxPrice come from the older API shape; CurAmount from
	// the newer single-amount shape. Prices are in KRW.
	MinPrice      *int   `json:"min_price,omitempty"`
	MaxPrice      *int   `json:"max_price,omitempty"`
	CurAmount     *int   `json:"cur_amount,omitempty"`
	EffectiveDate string `json:"effective_date,omitempty"`
	SpecialNote   string `json:"special_note,omitempty"`
}

// DisplayName returns the short name, falling back to the description.
func (i NonPaymentItem) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Description
}

// PriceRange resolves the versioned price fields to a (min, max) pair.
// A single current amount counts as both bounds. ok is false when the
// record carries no price at all.
func (i NonPaymentItem) PriceRange() (min, max int, ok bool) {
	switch {
	case i.MinPrice != nil && i.MaxPrice != nil:
		return *i.MinPrice, *i.MaxPrice, true
	case i.CurAmount != nil:
		return *i.CurAmount, *i.CurAmount, true
	case i.MinPrice != nil:
		return *i.MinPrice, *i.MinPrice, true
	case i.MaxPrice != nil:
		return *i.MaxPrice, *i.MaxPrice, true
	}
	return 0, 0, false
}
