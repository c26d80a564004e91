package extract

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/imadama/Bol-scrapper/models"
)

const productURL = "https://www.bol.com/nl/nl/p/led-lamp/9300000012345678/"

// fullProductPage exercises the primary strategy of every chain.
const fullProductPage = `
<html>
<head>
	<meta property="og:title" content="Meta Fallback Title" />
	<meta property="product:price:amount" content="99.99" />
</head>
<body>
	<span data-test="title">Philips Hue White E27</span>
	<h1>Generic Heading</h1>

	<div data-test="brand"><a href="/nl/b/philips/">Philips</a></div>

	<span class="promo-price" data-test="price">64
		<sup class="promo-price__fraction" data-test="price-fraction">74</sup>
	</span>
	<del class="buy-block__list-price" data-test="list-price">79,99</del>

	<dl>
		<dt class="specs__title">Kleur</dt><dd>Wit</dd>
		<dt class="specs__title">EAN</dt><dd>8712345678901</dd>
	</dl>

	<div data-test="description" class="product-description">
		Slimme   ledlamp met warmwit licht.
	</div>

	<div class="filmstrip-viewport">
		<img src="https://media.s-bol.com/abc/550x550.jpg" />
		<img data-src="https://media.s-bol.com/def/550x550.jpg" />
		<img src="https://media.s-bol.com/abc/550x550.jpg" />
		<img src="https://cdn.example.net/tracking.gif" />
	</div>
	<img src="https://media.s-bol.com/outside-gallery/550x550.jpg" />
</body>
</html>`

func extractFixture(t *testing.T, html string, opts ...Options) models.ProductRecord {
	t.Helper()
	d, err := NewDocument(html, productURL, productURL)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	rec, err := New(DefaultChainConfig()).Extract(d, opts...)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return rec
}

func TestExtract_FullPage(t *testing.T) {
	rec := extractFixture(t, fullProductPage)

	if rec.SourceURL != productURL {
		t.Errorf("SourceURL = %q, want %q", rec.SourceURL, productURL)
	}
	if rec.Title != "Philips Hue White E27" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Brand != "Philips" {
		t.Errorf("Brand = %q", rec.Brand)
	}
	// Whole amount + fraction, joined by the locale comma.
	if rec.PriceText != "64,74" {
		t.Errorf("PriceText = %q, want %q", rec.PriceText, "64,74")
	}
	if rec.PriceValue == nil || *rec.PriceValue != 64.74 {
		t.Errorf("PriceValue = %v, want 64.74", rec.PriceValue)
	}
	if rec.ListPriceText != "79,99" {
		t.Errorf("ListPriceText = %q, want %q", rec.ListPriceText, "79,99")
	}
	if rec.ListPriceValue == nil || *rec.ListPriceValue != 79.99 {
		t.Errorf("ListPriceValue = %v, want 79.99", rec.ListPriceValue)
	}
	if rec.EAN != "8712345678901" {
		t.Errorf("EAN = %q", rec.EAN)
	}
	if rec.Description != "Slimme ledlamp met warmwit licht." {
		t.Errorf("Description = %q", rec.Description)
	}

	wantImages := []string{
		"https://media.s-bol.com/abc/550x550.jpg",
		"https://media.s-bol.com/def/550x550.jpg",
	}
	if !reflect.DeepEqual(rec.AllImages, wantImages) {
		t.Errorf("AllImages = %v, want %v", rec.AllImages, wantImages)
	}
	if rec.MainImage != wantImages[0] {
		t.Errorf("MainImage = %q, want %q", rec.MainImage, wantImages[0])
	}
	if rec.LowConfidence {
		t.Error("LowConfidence = true for a fully populated page")
	}
}

func TestExtract_FallbackOnlyPage(t *testing.T) {
	// Only the generic heading and pattern-matched images are present:
	// the record takes the fallback values and everything else stays at
	// its empty default, with no low-confidence signal.
	page := `
	<html><body>
		<h1>Alleen Een Kop</h1>
		<img src="https://media.s-bol.com/one/550x550.jpg" />
		<img src="https://media.s-bol.com/two/550x550.jpg" />
	</body></html>`

	rec := extractFixture(t, page)

	if rec.Title != "Alleen Een Kop" {
		t.Errorf("Title = %q", rec.Title)
	}
	wantImages := []string{
		"https://media.s-bol.com/one/550x550.jpg",
		"https://media.s-bol.com/two/550x550.jpg",
	}
	if !reflect.DeepEqual(rec.AllImages, wantImages) {
		t.Errorf("AllImages = %v, want %v", rec.AllImages, wantImages)
	}
	if rec.Brand != "" || rec.EAN != "" || rec.Description != "" {
		t.Errorf("expected empty defaults, got brand=%q ean=%q description=%q",
			rec.Brand, rec.EAN, rec.Description)
	}
	if rec.PriceText != "" || rec.PriceValue != nil {
		t.Errorf("expected absent price, got text=%q value=%v", rec.PriceText, rec.PriceValue)
	}
	if rec.LowConfidence {
		t.Error("LowConfidence = true, want false (title and images resolved)")
	}
}

func TestExtract_MetaTitleFallback(t *testing.T) {
	page := `
	<html><head><meta property="og:title" content="Meta Only Title" /></head>
	<body><p>geen kop</p></body></html>`

	rec := extractFixture(t, page)
	if rec.Title != "Meta Only Title" {
		t.Errorf("Title = %q, want meta content", rec.Title)
	}
}

func TestExtract_BrandLabelStripped(t *testing.T) {
	page := `
	<html><body><div data-test="brand">Merk: Bosch</div></body></html>`

	rec := extractFixture(t, page)
	if rec.Brand != "Bosch" {
		t.Errorf("Brand = %q, want %q", rec.Brand, "Bosch")
	}
}

func TestExtract_UnparsablePricePreserved(t *testing.T) {
	page := `
	<html><body>
		<div data-test="priceBlockPrice"><span data-test="price">onbekend</span></div>
	</body></html>`

	rec := extractFixture(t, page)
	if rec.PriceText != "onbekend" {
		t.Errorf("PriceText = %q, want raw text preserved", rec.PriceText)
	}
	if rec.PriceValue != nil {
		t.Errorf("PriceValue = %v, want nil", *rec.PriceValue)
	}
}

func TestExtract_MetaPriceFallback(t *testing.T) {
	page := `
	<html><head><meta property="product:price:amount" content="64.74" /></head>
	<body></body></html>`

	rec := extractFixture(t, page)
	if rec.PriceText != "64.74" {
		t.Errorf("PriceText = %q, want %q", rec.PriceText, "64.74")
	}
	if rec.PriceValue == nil || *rec.PriceValue != 64.74 {
		t.Errorf("PriceValue = %v, want 64.74", rec.PriceValue)
	}
}

func TestExtract_EANTableFallback(t *testing.T) {
	page := `
	<html><body><table>
		<tr><th>EAN specificatie</th><td>8712345678901</td></tr>
	</table></body></html>`

	rec := extractFixture(t, page)
	if rec.EAN != "8712345678901" {
		t.Errorf("EAN = %q, want table fallback value", rec.EAN)
	}
}

func TestExtract_ImageCapAndDedupe(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><div class="filmstrip-viewport">`)
	// 25 distinct images plus repeats of the first; the cap keeps the
	// first 20 in document order.
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<img src="https://media.s-bol.com/img%02d/550x550.jpg" />`, i)
		b.WriteString(`<img src="https://media.s-bol.com/img00/550x550.jpg" />`)
	}
	b.WriteString(`</div></body></html>`)

	rec := extractFixture(t, b.String())

	if len(rec.AllImages) != models.MaxImages {
		t.Fatalf("len(AllImages) = %d, want %d", len(rec.AllImages), models.MaxImages)
	}
	seen := make(map[string]struct{})
	for _, u := range rec.AllImages {
		if _, dup := seen[u]; dup {
			t.Errorf("duplicate image URL %q", u)
		}
		seen[u] = struct{}{}
	}
	if rec.AllImages[0] != "https://media.s-bol.com/img00/550x550.jpg" {
		t.Errorf("AllImages[0] = %q, want document order preserved", rec.AllImages[0])
	}
	if rec.AllImages[19] != "https://media.s-bol.com/img19/550x550.jpg" {
		t.Errorf("AllImages[19] = %q, want 20th distinct candidate", rec.AllImages[19])
	}
	if rec.MainImage != rec.AllImages[0] {
		t.Errorf("MainImage = %q, want AllImages[0]", rec.MainImage)
	}
}

func TestExtract_RelativeImageURLsResolved(t *testing.T) {
	page := `
	<html><body><div class="filmstrip-viewport">
		<img src="//media.s-bol.com/rel/550x550.jpg" />
	</div></body></html>`

	rec := extractFixture(t, page)
	want := []string{"https://media.s-bol.com/rel/550x550.jpg"}
	if !reflect.DeepEqual(rec.AllImages, want) {
		t.Errorf("AllImages = %v, want %v", rec.AllImages, want)
	}
}

func TestExtract_LowConfidence(t *testing.T) {
	rec := extractFixture(t, `<html><body><p>lege pagina</p></body></html>`)

	if !rec.LowConfidence {
		t.Error("LowConfidence = false, want true (no title, no images)")
	}
	if rec.MainImage != "" || len(rec.AllImages) != 0 {
		t.Errorf("images = %q/%v, want empty", rec.MainImage, rec.AllImages)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	d, err := NewDocument(fullProductPage, productURL, productURL)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	ex := New(DefaultChainConfig())

	first, err := ex.Extract(d)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	second, err := ex.Extract(d)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtract_DescriptionMarkdown(t *testing.T) {
	page := `
	<html><body>
		<div data-test="description" class="product-description">
			<p>Slimme ledlamp met <strong>warmwit</strong> licht.</p>
		</div>
	</body></html>`

	rec := extractFixture(t, page, Options{DescriptionMarkdown: true})
	if !strings.Contains(rec.Description, "**warmwit**") {
		t.Errorf("Description = %q, want markdown emphasis", rec.Description)
	}
}

func TestExtract_NilDocument(t *testing.T) {
	_, err := New(DefaultChainConfig()).Extract(nil)
	if err == nil {
		t.Fatal("Extract(nil) = nil error, want EMPTY_DOCUMENT")
	}
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok || scrapeErr.Code != models.ErrCodeEmptyDocument {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeEmptyDocument)
	}
}

func TestNewDocument_Empty(t *testing.T) {
	_, err := NewDocument("   ", productURL, productURL)
	if err == nil {
		t.Fatal("NewDocument(empty) = nil error, want EMPTY_DOCUMENT")
	}
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok || scrapeErr.Code != models.ErrCodeEmptyDocument {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeEmptyDocument)
	}
}
