package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

// SelectorSpec is one selector-expressible strategy in a fallback chain.
// Attr, when set, extracts an attribute instead of element text (used for
// metadata tags like og:title).
type SelectorSpec struct {
	Sel  string `yaml:"sel"`
	Attr string `yaml:"attr,omitempty"`
}

// ChainConfig declares the selector-expressible parts of the per-field
// fallback chains as data. Precedence is the slice order. The structural
// strategies — the composed price primary, the brand label strip and the
// EAN label scans — are fixed in code; everything that is a plain
// "selector + text/attr" step can be overridden from a YAML file to absorb
// markup drift without a rebuild.
type ChainConfig struct {
	Title          []SelectorSpec `yaml:"title"`
	PriceFallbacks []SelectorSpec `yaml:"price_fallbacks"`
	ListPrice      []SelectorSpec `yaml:"list_price"`
	Description    []SelectorSpec `yaml:"description"`

	// ImageGallery selects the primary image-carousel container's images.
	ImageGallery string `yaml:"image_gallery"`

	// ImageHosts are substrings an image URL must all contain to count as
	// a product media URL (the fallback image strategy scans every <img>).
	ImageHosts []string `yaml:"image_hosts"`
}

// DefaultChainConfig returns the chains for current bol.com product markup.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		Title: []SelectorSpec{
			{Sel: `span[data-test="title"]`},
			{Sel: `h1[data-test="product-title"]`},
			{Sel: `h1`},
			{Sel: `meta[property="og:title"]`, Attr: "content"},
		},
		PriceFallbacks: []SelectorSpec{
			{Sel: `div[data-test="priceBlockPrice"] [data-test="price"]`},
			{Sel: `meta[property="product:price:amount"]`, Attr: "content"},
			{Sel: `[data-test="price"]`},
		},
		ListPrice: []SelectorSpec{
			{Sel: `del.buy-block__list-price[data-test="list-price"]`},
			{Sel: `span[data-test="list-price"]`},
			{Sel: `div[data-test="buy-block"] del`},
		},
		Description: []SelectorSpec{
			{Sel: `div[data-test="description"].product-description`},
			{Sel: `[data-test="description"]`},
			{Sel: `section#productDescription`},
		},
		ImageGallery: `.filmstrip-viewport img`,
		ImageHosts:   []string{"bol.com", "media"},
	}
}

// LoadChainConfig reads a YAML chain override file. Fields left empty in the
// file keep their defaults, so a drift fix can override a single chain.
// Every selector is compiled with cascadia up front so a typo fails at
// startup rather than silently matching nothing per request.
func LoadChainConfig(path string) (ChainConfig, error) {
	cfg := DefaultChainConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("chain config: read %s: %w", path, err)
	}

	var override ChainConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, fmt.Errorf("chain config: parse %s: %w", path, err)
	}

	if len(override.Title) > 0 {
		cfg.Title = override.Title
	}
	if len(override.PriceFallbacks) > 0 {
		cfg.PriceFallbacks = override.PriceFallbacks
	}
	if len(override.ListPrice) > 0 {
		cfg.ListPrice = override.ListPrice
	}
	if len(override.Description) > 0 {
		cfg.Description = override.Description
	}
	if override.ImageGallery != "" {
		cfg.ImageGallery = override.ImageGallery
	}
	if len(override.ImageHosts) > 0 {
		cfg.ImageHosts = override.ImageHosts
	}

	if err := cfg.Validate(); err != nil {
		return DefaultChainConfig(), err
	}
	return cfg, nil
}

// Validate compiles every selector in the config.
func (c ChainConfig) Validate() error {
	check := func(field string, specs []SelectorSpec) error {
		for _, spec := range specs {
			if strings.TrimSpace(spec.Sel) == "" {
				return fmt.Errorf("chain config: %s: empty selector", field)
			}
			if _, err := cascadia.Parse(spec.Sel); err != nil {
				return fmt.Errorf("chain config: %s: %q: %w", field, spec.Sel, err)
			}
		}
		return nil
	}

	if err := check("title", c.Title); err != nil {
		return err
	}
	if err := check("price_fallbacks", c.PriceFallbacks); err != nil {
		return err
	}
	if err := check("list_price", c.ListPrice); err != nil {
		return err
	}
	if err := check("description", c.Description); err != nil {
		return err
	}
	if _, err := cascadia.Parse(c.ImageGallery); err != nil {
		return fmt.Errorf("chain config: image_gallery: %q: %w", c.ImageGallery, err)
	}
	return nil
}

// Selectors for the fixed, structural strategies.
const (
	priceWholeSel    = `span.promo-price[data-test="price"]`
	priceFractionSel = `sup.promo-price__fraction[data-test="price-fraction"]`

	brandSel     = `div[data-test="brand"]`
	brandLinkSel = `div[data-test="brand"] a`
	brandLabel   = "Merk:"

	eanLabel    = "EAN"
	eanSpecsSel = `dt.specs__title`
	eanTableSel = `th`
)

// titleChain builds the title fallback chain.
func (c ChainConfig) titleChain() Chain {
	return specChain("title", c.Title)
}

// priceChain builds the sale-price chain. The primary strategy composes the
// whole-amount element with its fractional sub-element, joined by the locale
// decimal comma ("64" + "74" → "64,74"). The fraction <sup> sits inside the
// whole-amount span, so the whole part is read from the span's direct text
// nodes only. The strategy fires only when both parts are present; fallbacks
// yield the decimal text directly.
func (c ChainConfig) priceChain() Chain {
	composed := Strategy{
		Name: "price:promo-composed",
		Run: func(d *Document) string {
			sel := d.Find(priceWholeSel).First()

			var whole strings.Builder
			sel.Contents().Each(func(_ int, s *goquery.Selection) {
				if goquery.NodeName(s) == "#text" {
					whole.WriteString(s.Text())
				}
			})

			w := strings.TrimSpace(whole.String())
			fraction := strings.TrimSpace(sel.Find(priceFractionSel).First().Text())
			if w == "" || fraction == "" {
				return ""
			}
			return w + "," + fraction
		},
	}
	return append(Chain{composed}, specChain("price", c.PriceFallbacks)...)
}

func (c ChainConfig) listPriceChain() Chain {
	return specChain("list_price", c.ListPrice)
}

// brandChain prefers the link inside the brand container; the fallback takes
// the container's own text with the leading "Merk:" label stripped.
func (c ChainConfig) brandChain() Chain {
	return Chain{
		selText("brand:link", brandLinkSel),
		{
			Name: "brand:container",
			Run: func(d *Document) string {
				return stripLabel(d.Find(brandSel).First().Text(), brandLabel)
			},
		},
	}
}

// eanChain scans the spec definition list first, then product spec tables.
// Both variants share the pairedValue label-scan primitive; the value text
// is reduced to digits by the normalizer.
func (c ChainConfig) eanChain() Chain {
	return Chain{
		{Name: "ean:specs-dl", Run: pairedValue(eanSpecsSel, "dd", eanLabel)},
		{Name: "ean:table", Run: pairedValue(eanTableSel, "td", eanLabel)},
	}
}

func (c ChainConfig) descriptionChain() Chain {
	return specChain("description", c.Description)
}

func specChain(field string, specs []SelectorSpec) Chain {
	chain := make(Chain, 0, len(specs))
	for i, spec := range specs {
		chain = append(chain, fromSpec(fmt.Sprintf("%s:%d", field, i), spec))
	}
	return chain
}
