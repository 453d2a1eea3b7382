package models

import (
	"fmt"
	"math"
)

// MaxPriceDollars is the largest whole-dollar price whose cent amount fits in an int64
const MaxPriceDollars = math.MaxInt64 / 100

// CentsFromDollars converts a whole-dollar price to cents. Negative prices and
// prices too large to hold in cents are a ValidationError.
func CentsFromDollars(dollars int64) (int64, error) {
	if dollars < 0 {
		return 0, Errorf(ValidationError, "convert price", "price must not be negative")
	}
	if dollars > MaxPriceDollars {
		return 0, Errorf(ValidationError, "convert price", "price %d exceeds the maximum of %d dollars", dollars, int64(MaxPriceDollars))
	}
	return dollars * 100, nil
}

// Draft is a catalog item that has not been submitted yet
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImagePath   string `json:"image_path"`
}

// PriceDollars formats the draft price for display, e.g. "$12.50"
func (d Draft) PriceDollars() string {
	return fmt.Sprintf("$%.2f", float64(d.PriceCents)/100)
}

// DecisionKind is the outcome of reviewing a draft
type DecisionKind int

const (
	Accepted DecisionKind = iota
	Rejected
	Edited
)

func (k DecisionKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Edited:
		return "edited"
	default:
		return "unknown"
	}
}

// Decision is returned exactly once per review. Draft holds the final values
// (the edited ones when Kind is Edited).
type Decision struct {
	Kind  DecisionKind
	Draft Draft
}

// Proceed reports whether the draft should be uploaded
func (d Decision) Proceed() bool {
	return d.Kind != Rejected
}

// ItemRecord holds the identifiers the commerce platform assigned to an uploaded item
type ItemRecord struct {
	ItemID      string `json:"item_id"`
	VariationID string `json:"variation_id"`
	ImageID     string `json:"image_id,omitempty"`
}
