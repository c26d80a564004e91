package models

// Operator-entered defaults applied to every new listing before editing.
const (
	DefaultCondition = "Nieuw"
	DefaultStock     = 69
	DefaultForSale   = "Ja"
)

// Listing is one row of the export workbook: the extracted ProductRecord
// plus the operator-entered columns the template expects. It is the editable
// copy the confirm flow works on; the embedded record starts as the engine's
// output and may be overwritten field by field.
type Listing struct {
	Record ProductRecord `json:"record"`

	InternalReference string `json:"internal_reference"`
	Condition         string `json:"condition"`
	ConditionComment  string `json:"condition_comment"`
	Stock             int    `json:"stock"`
	DeliveryTime      string `json:"delivery_time"`
	DeliveryMethod    string `json:"delivery_method"`
	ForSale           string `json:"for_sale"`
	Participant       string `json:"marketplace_participant"`
}

// NewListing wraps a freshly extracted record with the template defaults.
func NewListing(rec ProductRecord) Listing {
	return Listing{
		Record:    rec,
		Condition: DefaultCondition,
		Stock:     DefaultStock,
		ForSale:   DefaultForSale,
	}
}

// Apply overwrites the listing with the fields present in the update.
// Main image and image list stay consistent: when the image list changes,
// the main image follows the first entry unless explicitly set too.
func (l *Listing) Apply(u *RecordUpdate) {
	if u.Title != nil {
		l.Record.Title = *u.Title
	}
	if u.Brand != nil {
		l.Record.Brand = *u.Brand
	}
	if u.PriceText != nil {
		l.Record.PriceText = *u.PriceText
	}
	if u.PriceValue != nil {
		l.Record.PriceValue = u.PriceValue
	}
	if u.ListPriceText != nil {
		l.Record.ListPriceText = *u.ListPriceText
	}
	if u.ListPriceValue != nil {
		l.Record.ListPriceValue = u.ListPriceValue
	}
	if u.EAN != nil {
		l.Record.EAN = *u.EAN
	}
	if u.Description != nil {
		l.Record.Description = *u.Description
	}
	if u.AllImages != nil {
		l.Record.AllImages = u.AllImages
		if len(u.AllImages) > 0 {
			l.Record.MainImage = u.AllImages[0]
		} else {
			l.Record.MainImage = ""
		}
	}
	if u.MainImage != nil {
		l.Record.MainImage = *u.MainImage
	}

	if u.InternalReference != nil {
		l.InternalReference = *u.InternalReference
	}
	if u.Condition != nil {
		l.Condition = *u.Condition
	}
	if u.ConditionComment != nil {
		l.ConditionComment = *u.ConditionComment
	}
	if u.Stock != nil {
		l.Stock = *u.Stock
	}
	if u.DeliveryTime != nil {
		l.DeliveryTime = *u.DeliveryTime
	}
	if u.DeliveryMethod != nil {
		l.DeliveryMethod = *u.DeliveryMethod
	}
	if u.ForSale != nil {
		l.ForSale = *u.ForSale
	}
	if u.Participant != nil {
		l.Participant = *u.Participant
	}
}
