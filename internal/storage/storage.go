package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eccentric-easel/easel/internal/catalog"
	"github.com/eccentric-easel/easel/internal/models"
	"github.com/parquet-go/parquet-go"
)

// ItemRow is one catalog item as stored in a snapshot file
type ItemRow struct {
	ID             string `parquet:"id"`
	Type           string `parquet:"type"`
	Name           string `parquet:"name"`
	Description    string `parquet:"description,optional"`
	EcomURI        string `parquet:"ecom_uri,optional"`
	VariationCount int32  `parquet:"variation_count"`
	PriceAmount    int64  `parquet:"price_amount"`
	PriceCurrency  string `parquet:"price_currency,optional"`
}

// Row flattens a catalog object. Only the first variation's price is kept.
func Row(obj catalog.Object) ItemRow {
	row := ItemRow{ID: obj.ID, Type: obj.Type}
	if obj.ItemData == nil {
		return row
	}

	row.Name = obj.ItemData.Name
	row.Description = obj.ItemData.Description
	row.EcomURI = obj.ItemData.EcomURI
	row.VariationCount = int32(len(obj.ItemData.Variations))
	if money, ok := obj.FirstPrice(); ok {
		row.PriceAmount = money.Amount
		row.PriceCurrency = money.Currency
	}
	return row
}

// Object rebuilds the catalog object a row was taken from. Items that had
// variations get a single variation carrying the stored price, if any.
func (r ItemRow) Object() catalog.Object {
	obj := catalog.Object{
		Type: r.Type,
		ID:   r.ID,
		ItemData: &catalog.ItemData{
			Name:        r.Name,
			Description: r.Description,
			EcomURI:     r.EcomURI,
		},
	}
	if r.VariationCount > 0 {
		variation := &catalog.VariationData{ItemID: r.ID}
		if r.PriceCurrency != "" {
			variation.PriceMoney = &catalog.Money{Amount: r.PriceAmount, Currency: r.PriceCurrency}
		}
		obj.ItemData.Variations = []catalog.Object{{Type: "ITEM_VARIATION", ItemVariationData: variation}}
	}
	return obj
}

// SaveSnapshot writes objects to a parquet file at path
func SaveSnapshot(path string, objects []catalog.Object) error {
	rows := make([]ItemRow, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, Row(obj))
	}

	if err := parquet.WriteFile(path, rows); err != nil {
		return models.NewError(models.IOError, "save snapshot", fmt.Errorf("failed to write snapshot: %w", err))
	}
	slog.Info("Catalog snapshot saved", "path", path, "items", len(rows))
	return nil
}

// LoadSnapshot reads back a file written by SaveSnapshot
func LoadSnapshot(path string) ([]catalog.Object, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, models.NewError(models.IOError, "load snapshot", fmt.Errorf("failed to open snapshot: %w", err))
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, models.NewError(models.IOError, "load snapshot", fmt.Errorf("failed to stat snapshot: %w", err))
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, models.NewError(models.IOError, "load snapshot", fmt.Errorf("failed to open parquet: %w", err))
	}
	slog.Debug("Snapshot opened", "path", path, "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[ItemRow](pf)
	defer reader.Close()

	var objects []catalog.Object
	rows := make([]ItemRow, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			objects = append(objects, row.Object())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.NewError(models.IOError, "load snapshot", fmt.Errorf("failed to read snapshot rows: %w", err))
		}
	}

	return objects, nil
}
