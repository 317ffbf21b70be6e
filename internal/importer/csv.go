package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSV column headers. Matching is case-insensitive and order-free; unknown
// columns are ignored so supplier exports with extra fields still load.
const (
	colItem        = "item"
	colDescription = "description"
	colPackDesc    = "pack_description"
	colVATCode     = "vat_code"
	colStock       = "stock"
	colCategory    = "category"
	colSubcategory = "subcategory"
	colBrand       = "brand"
	colPMP         = "pmp"
	colRRP         = "rrp"
	colPOR         = "por"
	colPromoStart  = "promo_start"
	colPromoEnd    = "promo_end"
	colEAN         = "ean"
	colInternalBC  = "internal_barcode"
)

const dateLayout = "2006-01-02"

// ReadCSV parses a header-mapped catalog export into records. Tier prices
// come from price_1..price_3 and promo_1..promo_3 columns.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx[colItem]; !ok {
		return nil, fmt.Errorf("csv missing required %q column", colItem)
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := rowToRecord(idx, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func rowToRecord(idx map[string]int, row []string) (Record, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Item:            get(colItem),
		Description:     get(colDescription),
		PackDescription: get(colPackDesc),
		VATCode:         get(colVATCode),
		Category:        get(colCategory),
		Subcategory:     get(colSubcategory),
		Brand:           get(colBrand),
		EAN:             get(colEAN),
		InternalBC:      get(colInternalBC),
	}

	var err error
	if rec.Stock, err = parseIntField(get(colStock)); err != nil {
		return rec, fmt.Errorf("stock: %w", err)
	}
	if rec.RRP, err = parseFloatField(get(colRRP)); err != nil {
		return rec, fmt.Errorf("rrp: %w", err)
	}
	if rec.POR, err = parseFloatField(get(colPOR)); err != nil {
		return rec, fmt.Errorf("por: %w", err)
	}

	switch strings.ToLower(get(colPMP)) {
	case "", "0", "false", "no", "plain":
		rec.PMP = false
	case "1", "true", "yes", "pmp":
		rec.PMP = true
	default:
		return rec, fmt.Errorf("pmp: unrecognized value %q", get(colPMP))
	}

	for i := 0; i < 3; i++ {
		if rec.Prices[i], err = parseFloatField(get(fmt.Sprintf("price_%d", i+1))); err != nil {
			return rec, fmt.Errorf("price_%d: %w", i+1, err)
		}
		if rec.PromoPrices[i], err = parseFloatField(get(fmt.Sprintf("promo_%d", i+1))); err != nil {
			return rec, fmt.Errorf("promo_%d: %w", i+1, err)
		}
	}

	if rec.PromoStart, err = parseDateField(get(colPromoStart)); err != nil {
		return rec, fmt.Errorf("%s: %w", colPromoStart, err)
	}
	if rec.PromoEnd, err = parseDateField(get(colPromoEnd)); err != nil {
		return rec, fmt.Errorf("%s: %w", colPromoEnd, err)
	}

	return rec, nil
}

func parseIntField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloatField(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseDateField(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return &d, nil
}
