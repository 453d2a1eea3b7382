package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/eccentric-easel/easel/internal/images"
	"github.com/eccentric-easel/easel/internal/models"
	"github.com/google/uuid"
)

const (
	// Currency is the only currency items are priced in
	Currency = "USD"
	// OccurredAtLayout is UTC with millisecond precision
	OccurredAtLayout = "2006-01-02T15:04:05.000Z"
)

// Platform is the subset of the commerce API the uploader calls
type Platform interface {
	CreateItem(ctx context.Context, idempotencyKey string, item Object) (ItemIDs, error)
	AdjustInventory(ctx context.Context, idempotencyKey string, changes []InventoryChange) error
	CreateImage(ctx context.Context, req ImageRequest, filename, contentType string, image io.Reader) (string, error)
}

// Option is custom configuration of Uploader
type Option func(u *Uploader)

// WithClock overrides the time source used for inventory timestamps
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) { u.now = now }
}

// WithTokens overrides the idempotency token generator
func WithTokens(next func() string) Option {
	return func(u *Uploader) { u.newToken = next }
}

// WithResize uploads a JPEG scaled to fit maxDimension instead of the original file
func WithResize(maxDimension int) Option {
	return func(u *Uploader) { u.maxDimension = maxDimension }
}

// Uploader creates a catalog item, stocks it and attaches its photo
type Uploader struct {
	platform     Platform
	now          func() time.Time
	newToken     func() string
	maxDimension int
}

// NewUploader returns new Uploader
func NewUploader(platform Platform, ops ...Option) *Uploader {
	u := &Uploader{
		platform: platform,
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, op := range ops {
		op(u)
	}
	return u
}

// Upload runs the three dependent calls in order. A failure after the item
// was created leaves the item in place; the returned record carries the ids
// obtained so far.
func (u *Uploader) Upload(ctx context.Context, draft models.Draft, locationID string) (models.ItemRecord, error) {
	var record models.ItemRecord

	ids, err := u.platform.CreateItem(ctx, u.newToken(), NewItem(draft, tempID()))
	if err != nil {
		return record, models.NewError(models.UploadError, "create item", fmt.Errorf("error adding item: %w", err))
	}
	record.ItemID = ids.ItemID
	record.VariationID = ids.VariationID
	slog.Info("Created catalog item", "name", draft.Name, "item_id", ids.ItemID, "variation_id", ids.VariationID)

	if err := u.platform.AdjustInventory(ctx, u.newToken(), []InventoryChange{u.stockOne(ids.VariationID, locationID)}); err != nil {
		return record, models.NewError(models.UploadError, "adjust inventory", fmt.Errorf("error adding inventory: %w", err))
	}
	slog.Info("Added 1 item to inventory", "variation_id", ids.VariationID, "location_id", locationID)

	imageID, err := u.attachImage(ctx, draft, ids.ItemID)
	if err != nil {
		return record, err
	}
	record.ImageID = imageID
	slog.Info("Image uploaded and linked to item", "item_id", ids.ItemID, "image_id", imageID)

	return record, nil
}

func (u *Uploader) stockOne(variationID, locationID string) InventoryChange {
	return InventoryChange{
		Type: "ADJUSTMENT",
		Adjustment: &InventoryAdjustment{
			FromState:       "NONE",
			ToState:         "IN_STOCK",
			LocationID:      locationID,
			CatalogObjectID: variationID,
			Quantity:        strconv.Itoa(1),
			OccurredAt:      u.now().UTC().Format(OccurredAtLayout),
		},
	}
}

func (u *Uploader) attachImage(ctx context.Context, draft models.Draft, itemID string) (string, error) {
	var (
		body        io.Reader
		contentType string
	)
	if u.maxDimension > 0 {
		resized, err := images.Resize(draft.ImagePath, u.maxDimension, u.maxDimension)
		if err != nil {
			return "", err
		}
		body, contentType = resized, "image/jpeg"
	} else {
		data, err := os.ReadFile(draft.ImagePath)
		if err != nil {
			return "", models.NewError(models.IOError, "open image", fmt.Errorf("failed to open image: %w", err))
		}
		body, contentType = bytes.NewReader(data), images.DetectMIMEType(data)
	}

	req := ImageRequest{
		IdempotencyKey: u.newToken(),
		ObjectID:       itemID,
		Image: Object{
			Type: "IMAGE",
			ID:   "#" + tempID(),
			ImageData: &ImageData{
				Name:    draft.Name,
				Caption: draft.Description,
			},
		},
		IsPrimary: true,
	}

	imageID, err := u.platform.CreateImage(ctx, req, filepath.Base(draft.ImagePath), contentType, body)
	if err != nil {
		return "", models.NewError(models.UploadError, "attach image", fmt.Errorf("failed to upload image: %w", err))
	}
	return imageID, nil
}

// NewItem builds the item object for a draft. id is a client-side temporary
// id; the platform replaces it.
func NewItem(draft models.Draft, id string) Object {
	itemID := "#" + id
	return Object{
		Type:                  "ITEM",
		ID:                    itemID,
		PresentAtAllLocations: true,
		ItemData: &ItemData{
			Name:               draft.Name,
			Description:        draft.Description,
			IsTaxable:          true,
			AvailableOnline:    true,
			AvailableForPickup: true,
			ProductType:        "REGULAR",
			SkipModifierScreen: true,
			Variations: []Object{
				{
					Type: "ITEM_VARIATION",
					ID:   itemID + "-variation",
					ItemVariationData: &VariationData{
						ItemID:         itemID,
						Name:           draft.Name,
						PricingType:    "FIXED_PRICING",
						PriceMoney:     &Money{Amount: draft.PriceCents, Currency: Currency},
						TrackInventory: true,
						Sellable:       true,
					},
				},
			},
		},
	}
}

func tempID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
