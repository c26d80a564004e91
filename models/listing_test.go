package models

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestNewListing_Defaults(t *testing.T) {
	l := NewListing(ProductRecord{Title: "Lamp"})

	if l.Record.Title != "Lamp" {
		t.Errorf("Record.Title = %q", l.Record.Title)
	}
	if l.Condition != DefaultCondition {
		t.Errorf("Condition = %q, want %q", l.Condition, DefaultCondition)
	}
	if l.Stock != DefaultStock {
		t.Errorf("Stock = %d, want %d", l.Stock, DefaultStock)
	}
	if l.ForSale != DefaultForSale {
		t.Errorf("ForSale = %q, want %q", l.ForSale, DefaultForSale)
	}
	if l.InternalReference != "" || l.Participant != "" {
		t.Errorf("operator fields = %q/%q, want empty", l.InternalReference, l.Participant)
	}
}

func TestListingApply_PartialUpdate(t *testing.T) {
	l := NewListing(ProductRecord{Title: "Oud", Brand: "Philips"})

	l.Apply(&RecordUpdate{
		Title: strPtr("Nieuw Titel"),
		Stock: intPtr(3),
	})

	if l.Record.Title != "Nieuw Titel" {
		t.Errorf("Title = %q", l.Record.Title)
	}
	if l.Record.Brand != "Philips" {
		t.Errorf("Brand = %q, want untouched", l.Record.Brand)
	}
	if l.Stock != 3 {
		t.Errorf("Stock = %d, want 3", l.Stock)
	}
	if l.Condition != DefaultCondition {
		t.Errorf("Condition = %q, want untouched default", l.Condition)
	}
}

func TestListingApply_ImagesSyncMainImage(t *testing.T) {
	l := NewListing(ProductRecord{
		MainImage: "https://media.s-bol.com/a.jpg",
		AllImages: []string{"https://media.s-bol.com/a.jpg"},
	})

	images := []string{"https://media.s-bol.com/b.jpg", "https://media.s-bol.com/c.jpg"}
	l.Apply(&RecordUpdate{AllImages: images})

	if !reflect.DeepEqual(l.Record.AllImages, images) {
		t.Errorf("AllImages = %v", l.Record.AllImages)
	}
	if l.Record.MainImage != images[0] {
		t.Errorf("MainImage = %q, want first new image", l.Record.MainImage)
	}

	// Emptying the list clears the main image too.
	l.Apply(&RecordUpdate{AllImages: []string{}})
	if l.Record.MainImage != "" {
		t.Errorf("MainImage = %q, want empty", l.Record.MainImage)
	}
}

func TestListingApply_ExplicitMainImageWins(t *testing.T) {
	l := NewListing(ProductRecord{})

	l.Apply(&RecordUpdate{
		AllImages: []string{"https://media.s-bol.com/b.jpg"},
		MainImage: strPtr("https://media.s-bol.com/custom.jpg"),
	})

	if l.Record.MainImage != "https://media.s-bol.com/custom.jpg" {
		t.Errorf("MainImage = %q, want explicit value", l.Record.MainImage)
	}
}

func TestListingApply_PriceValue(t *testing.T) {
	l := NewListing(ProductRecord{})
	v := 12.5
	l.Apply(&RecordUpdate{PriceText: strPtr("12,50"), PriceValue: &v})

	if l.Record.PriceText != "12,50" {
		t.Errorf("PriceText = %q", l.Record.PriceText)
	}
	if l.Record.PriceValue == nil || *l.Record.PriceValue != 12.5 {
		t.Errorf("PriceValue = %v, want 12.5", l.Record.PriceValue)
	}
}
