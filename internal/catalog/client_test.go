package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/eccentric-easel/easel/internal/catalog/catalogtest"
	"github.com/eccentric-easel/easel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	srv := catalogtest.NewServer(t)
	client := srv.CatalogClient()

	item := catalog.NewItem(models.Draft{Name: "Widget A", Description: "A widget", PriceCents: 1000}, "abcd1234")
	ids, err := client.CreateItem(context.Background(), "key-1", item)
	require.NoError(t, err)

	assert.Equal(t, catalog.ItemIDs{ItemID: "ITEM_1", VariationID: "VAR_1"}, ids)
	require.Len(t, srv.Items, 1)
	assert.Equal(t, "#abcd1234", srv.Items[0].ID)
	assert.Equal(t, []string{"key-1"}, srv.ItemKeys)
	assert.Equal(t, "Bearer test-token", srv.Authorizations[0])
}

func TestAPIErrorPayload(t *testing.T) {
	srv := catalogtest.NewServer(t)
	srv.Fail[catalogtest.PathCreateItem] = http.StatusBadRequest

	_, err := srv.CatalogClient().CreateItem(context.Background(), "key", catalog.Object{Type: "ITEM"})
	require.Error(t, err)

	var apiErr *catalog.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "BAD_REQUEST", apiErr.Errors[0].Code)
	assert.Contains(t, err.Error(), "forced failure")
}

func TestCreateImage(t *testing.T) {
	srv := catalogtest.NewServer(t)

	req := catalog.ImageRequest{
		IdempotencyKey: "img-key",
		ObjectID:       "ITEM_9",
		Image:          catalog.Object{Type: "IMAGE", ID: "#img", ImageData: &catalog.ImageData{Name: "n", Caption: "c"}},
		IsPrimary:      true,
	}
	id, err := srv.CatalogClient().CreateImage(context.Background(), req, "sheep.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "IMG_1", id)
	require.Len(t, srv.Images, 1)
	assert.Equal(t, req, srv.Images[0].Request)
	assert.Equal(t, "sheep.jpg", srv.Images[0].Filename)
	assert.Equal(t, "image/jpeg", srv.Images[0].ContentType)
	assert.Equal(t, []byte("jpeg-bytes"), srv.Images[0].Data)
}

func TestListItemsFollowsCursor(t *testing.T) {
	srv := catalogtest.NewServer(t)
	srv.PageSize = 2
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		srv.Listing = append(srv.Listing, catalog.Object{Type: "ITEM", ID: id})
	}

	objects, err := srv.CatalogClient().ListItems(context.Background())
	require.NoError(t, err)

	require.Len(t, objects, 5)
	assert.Equal(t, "E", objects[4].ID)
	assert.Equal(t, 3, srv.CallCount(catalogtest.PathList))
}

func TestListLocations(t *testing.T) {
	srv := catalogtest.NewServer(t)
	srv.Locations = []catalog.Location{
		{ID: "L1", Name: "Studio", Address: catalog.Address{AddressLine1: "1 Easel Way", Locality: "Portland"}},
	}

	locations, err := srv.CatalogClient().ListLocations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.Locations, locations)
}

func TestNewClientEnvironment(t *testing.T) {
	assert.Equal(t, catalog.SandboxURL, catalog.NewClient("Sandbox", "t", 0).BaseURL)
	assert.Equal(t, catalog.ProductionURL, catalog.NewClient("production", "t", 0).BaseURL)
}

func TestFirstPrice(t *testing.T) {
	obj := catalog.Object{Type: "ITEM", ItemData: &catalog.ItemData{Name: "x"}}
	_, ok := obj.FirstPrice()
	assert.False(t, ok)

	obj.ItemData.Variations = []catalog.Object{{ItemVariationData: &catalog.VariationData{PricingType: "VARIABLE_PRICING"}}}
	_, ok = obj.FirstPrice()
	assert.False(t, ok)

	obj.ItemData.Variations = []catalog.Object{{ItemVariationData: &catalog.VariationData{PriceMoney: &catalog.Money{Amount: 2500, Currency: "USD"}}}}
	money, ok := obj.FirstPrice()
	assert.True(t, ok)
	assert.EqualValues(t, 2500, money.Amount)
}
