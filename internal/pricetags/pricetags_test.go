package pricetags

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, amount int64, uri string) catalog.Object {
	return catalog.Object{
		Type: "ITEM",
		ItemData: &catalog.ItemData{
			Name:    name,
			EcomURI: uri,
			Variations: []catalog.Object{
				{Type: "ITEM_VARIATION", ItemVariationData: &catalog.VariationData{PriceMoney: &catalog.Money{Amount: amount, Currency: "USD"}}},
			},
		},
	}
}

func TestExtract(t *testing.T) {
	noVariations := catalog.Object{Type: "ITEM", ItemData: &catalog.ItemData{Name: "Bare"}}
	category := catalog.Object{Type: "CATEGORY"}
	variablePrice := catalog.Object{Type: "ITEM", ItemData: &catalog.ItemData{
		Name:       "Commission",
		Variations: []catalog.Object{{Type: "ITEM_VARIATION", ItemVariationData: &catalog.VariationData{PricingType: "VARIABLE_PRICING"}}},
	}}

	entries := Extract([]catalog.Object{
		item("Widget A", 1000, "https://shop.example/a"),
		noVariations,
		category,
		variablePrice,
		item("", 123450, ""),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "Widget A", entries[0].Title)
	assert.True(t, decimal.NewFromInt(10).Equal(entries[0].Price))
	assert.Equal(t, "https://shop.example/a", entries[0].URL)
	assert.Equal(t, DefaultTitle, entries[1].Title)
	assert.Equal(t, "1234.5", entries[1].Price.String())
}

func TestLetterLayout(t *testing.T) {
	l := Letter()

	assert.Equal(t, 2, l.PerRow())
	assert.Equal(t, 4, l.PerColumn())
	assert.Equal(t, 8, l.Capacity())

	x, y := l.Origin()
	assert.InDelta(t, 36, x, 0.001)
	assert.InDelta(t, 54, y, 0.001)
}

func TestPlaceThreeItems(t *testing.T) {
	placements := Letter().Place(3)

	require.Len(t, placements, 3)
	assert.Equal(t, Placement{Page: 0, Row: 0, Col: 0, X: 36, Y: 54}, placements[0])
	assert.Equal(t, Placement{Page: 0, Row: 0, Col: 1, X: 324, Y: 54}, placements[1])
	assert.Equal(t, Placement{Page: 0, Row: 1, Col: 0, X: 36, Y: 234}, placements[2])
}

func TestPlaceSpillsToSecondPage(t *testing.T) {
	l := Letter()
	placements := l.Place(9)

	require.Len(t, placements, 9)
	assert.Equal(t, 2, l.Pages(9))
	assert.Equal(t, 0, placements[7].Page)
	assert.Equal(t, 3, placements[7].Row)
	assert.Equal(t, Placement{Page: 1, Row: 0, Col: 0, X: 36, Y: 54}, placements[8])
}

func TestPages(t *testing.T) {
	l := Letter()
	tests := map[int]int{0: 0, 1: 1, 8: 1, 9: 2, 16: 2, 17: 3}
	for n, want := range tests {
		if got := l.Pages(n); got != want {
			t.Errorf("Pages(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Short", "Short"},
		{"Exactly twenty chars", "Exactly twenty chars"},
		{"A rather long item title", "A rather long item t"},
		{"Café crème brûlée au lait", "Café crème brûlée au"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, MaxTitleRunes); got != tt.want {
			t.Errorf("Truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"10":      "$10.00",
		"1234.5":  "$1,234.50",
		"0.99":    "$0.99",
		"1000000": "$1,000,000.00",
	}
	for in, want := range tests {
		if got := FormatPrice(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPrice(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestQRCodeHasNoBorder(t *testing.T) {
	data, err := QRCode("https://shop.example/a")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// top-left finder pattern starts at the very edge
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r+g+b)
}

func TestRender(t *testing.T) {
	entries := Extract([]catalog.Object{
		item("Widget A", 1000, "https://shop.example/a"),
		item("Widget B", 2500, ""),
		item("Widget C with a very long name", 99900, "https://shop.example/c"),
	})

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(entries, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")))
}

func TestRenderFileTwoPages(t *testing.T) {
	objects := make([]catalog.Object, 9)
	for i := range objects {
		objects[i] = item("Tag", int64(100*(i+1)), "")
	}
	path := filepath.Join(t.TempDir(), "price_tags.pdf")

	require.NoError(t, NewRenderer().RenderFile(Extract(objects), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("/Type /Page\n")))
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(nil, &buf))
	assert.NotZero(t, buf.Len())
}
