package pricetags

import (
	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultTitle is printed for items that have no name
const DefaultTitle = "No Title"

// Entry is the printable view of one catalog item
type Entry struct {
	Title string
	Price decimal.Decimal
	URL   string
}

// Extract keeps items whose first variation has a fixed price and reads the
// title, storefront URL and that price from each.
func Extract(objects []catalog.Object) []Entry {
	return lo.FilterMap(objects, func(obj catalog.Object, _ int) (Entry, bool) {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			return Entry{}, false
		}
		money, ok := obj.FirstPrice()
		if !ok {
			return Entry{}, false
		}

		title := obj.ItemData.Name
		if title == "" {
			title = DefaultTitle
		}
		return Entry{
			Title: title,
			Price: decimal.New(money.Amount, -2),
			URL:   obj.ItemData.EcomURI,
		}, true
	})
}
