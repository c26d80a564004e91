package models

import (
	"strconv"
	"strings"
)

// MaxImages caps the number of gallery images kept per record.
const MaxImages = 20

// ImageJoinSeparator joins AllImages when the record is flattened to a
// spreadsheet cell.
const ImageJoinSeparator = "|"

// ProductRecord is the result of one product-page extraction.
//
// Every field resolves independently: a miss on one field never blocks the
// others. Text fields default to "" when no strategy matched; the numeric
// price fields are nil when the corresponding text did not parse. The engine
// never mutates a record after building it — edits from the confirm flow
// happen on a copy held by the API layer.
type ProductRecord struct {
	// SourceURL is the product page URL, validated by the caller.
	SourceURL string `json:"source_url"`

	Title string `json:"title"`
	Brand string `json:"brand"`

	// PriceText is the raw localized sale price, e.g. "64,74".
	PriceText string `json:"price_text"`

	// PriceValue is the parsed sale price. It is nil if and only if
	// PriceText did not parse as a decimal; the raw text is kept either way.
	PriceValue *float64 `json:"price_value"`

	// ListPriceText is the struck-through reference price, often empty.
	ListPriceText  string   `json:"list_price_text"`
	ListPriceValue *float64 `json:"list_price_value"`

	EAN         string `json:"ean"`
	Description string `json:"description"`

	// MainImage is AllImages[0] when the gallery is non-empty, else "".
	MainImage string `json:"main_image"`

	// AllImages holds absolute, deduplicated URLs in document order,
	// at most MaxImages entries.
	AllImages []string `json:"all_images"`

	// LowConfidence is set when both Title and AllImages came up empty.
	// The record is still complete and well-formed; the caller decides
	// whether to treat the scrape as failed.
	LowConfidence bool `json:"low_confidence"`
}

// JoinedImages returns AllImages as a single spreadsheet cell value.
func (r *ProductRecord) JoinedImages() string {
	return strings.Join(r.AllImages, ImageJoinSeparator)
}

// SheetRow flattens the record into the eleven engine fields in schema
// order. Absent numeric values serialize as empty strings.
func (r *ProductRecord) SheetRow() []string {
	return []string{
		r.SourceURL,
		r.Title,
		r.Brand,
		r.PriceText,
		formatPrice(r.PriceValue),
		r.ListPriceText,
		formatPrice(r.ListPriceValue),
		r.EAN,
		r.Description,
		r.MainImage,
		r.JoinedImages(),
	}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
