package catalog

// Object is a catalog object as the platform serializes it. Only the fields
// this tool reads or writes are modelled.
type Object struct {
	Type                  string         `json:"type"`
	ID                    string         `json:"id"`
	PresentAtAllLocations bool           `json:"present_at_all_locations,omitempty"`
	ItemData              *ItemData      `json:"item_data,omitempty"`
	ItemVariationData     *VariationData `json:"item_variation_data,omitempty"`
	ImageData             *ImageData     `json:"image_data,omitempty"`
}

type ItemData struct {
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	IsTaxable          bool     `json:"is_taxable,omitempty"`
	AvailableOnline    bool     `json:"available_online,omitempty"`
	AvailableForPickup bool     `json:"available_for_pickup,omitempty"`
	Variations         []Object `json:"variations,omitempty"`
	ProductType        string   `json:"product_type,omitempty"`
	SkipModifierScreen bool     `json:"skip_modifier_screen,omitempty"`
	EcomURI            string   `json:"ecom_uri,omitempty"`
}

type VariationData struct {
	ItemID         string `json:"item_id,omitempty"`
	Name           string `json:"name,omitempty"`
	PricingType    string `json:"pricing_type,omitempty"`
	PriceMoney     *Money `json:"price_money,omitempty"`
	TrackInventory bool   `json:"track_inventory,omitempty"`
	Sellable       bool   `json:"sellable,omitempty"`
}

type ImageData struct {
	Name    string `json:"name,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Money is an amount in the currency's smallest unit
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// FirstPrice returns the price of the item's first variation. It reports
// false when there are no variations or the first one has no fixed price.
func (o Object) FirstPrice() (Money, bool) {
	if o.ItemData == nil || len(o.ItemData.Variations) == 0 {
		return Money{}, false
	}
	v := o.ItemData.Variations[0].ItemVariationData
	if v == nil || v.PriceMoney == nil {
		return Money{}, false
	}
	return *v.PriceMoney, true
}

// ItemIDs are the permanent ids assigned by CreateItem
type ItemIDs struct {
	ItemID      string
	VariationID string
}

// InventoryChange is one entry of a batch inventory change
type InventoryChange struct {
	Type       string               `json:"type"`
	Adjustment *InventoryAdjustment `json:"adjustment,omitempty"`
}

type InventoryAdjustment struct {
	FromState       string `json:"from_state"`
	ToState         string `json:"to_state"`
	LocationID      string `json:"location_id"`
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"`
	OccurredAt      string `json:"occurred_at"`
}

// ImageRequest is the JSON part of an image upload
type ImageRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	ObjectID       string `json:"object_id"`
	Image          Object `json:"image"`
	IsPrimary      bool   `json:"is_primary"`
}

// Location is a selling point inventory is tracked against
type Location struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Status  string  `json:"status,omitempty"`
	Address Address `json:"address"`
}

type Address struct {
	AddressLine1 string `json:"address_line_1"`
	Locality     string `json:"locality"`
}
