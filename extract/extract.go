package extract

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/imadama/Bol-scrapper/models"
)

// Options carries optional extraction parameters.
type Options struct {
	// DescriptionMarkdown renders the description container as Markdown
	// instead of flattened plain text.
	DescriptionMarkdown bool
}

// Extractor assembles one ProductRecord per rendered document by running the
// per-field fallback chains in schema order and normalizing their output.
//
// An Extractor is immutable after construction and safe for concurrent use;
// each Extract call only reads its own document and allocates its own record.
type Extractor struct {
	cfg ChainConfig

	title       Chain
	price       Chain
	listPrice   Chain
	brand       Chain
	ean         Chain
	description Chain

	md *converter.Converter
}

// New builds an Extractor from a chain configuration.
func New(cfg ChainConfig) *Extractor {
	return &Extractor{
		cfg:         cfg,
		title:       cfg.titleChain(),
		price:       cfg.priceChain(),
		listPrice:   cfg.listPriceChain(),
		brand:       cfg.brandChain(),
		ean:         cfg.eanChain(),
		description: cfg.descriptionChain(),
		md:          newMarkdownConverter(),
	}
}

// Extract runs every field chain against the document and builds the record.
//
// Field misses and parse failures are absorbed locally: a field that
// resolves nothing gets its empty default, an unparsable price keeps its raw
// text with a nil value, and neither ever fails the record. The only error
// is a nil document. When both title and images come up empty the record is
// flagged LowConfidence; it is still returned complete and well-formed.
func (e *Extractor) Extract(d *Document, opts ...Options) (models.ProductRecord, error) {
	if d == nil {
		return models.ProductRecord{}, models.NewScrapeError(
			models.ErrCodeEmptyDocument,
			"no document to extract from",
			nil,
		)
	}

	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	priceText := e.price.Run(d)
	listPriceText := e.listPrice.Run(d)

	description := normalizeSpace(e.description.Run(d))
	if opt.DescriptionMarkdown {
		if md := e.descriptionMarkdown(d); md != "" {
			description = md
		}
	}

	images := collectImages(d, e.cfg.ImageGallery, e.cfg.ImageHosts)
	mainImage := ""
	if len(images) > 0 {
		mainImage = images[0]
	}

	rec := models.ProductRecord{
		SourceURL:      d.SourceURL(),
		Title:          normalizeSpace(e.title.Run(d)),
		Brand:          normalizeSpace(e.brand.Run(d)),
		PriceText:      priceText,
		PriceValue:     ParsePrice(priceText),
		ListPriceText:  listPriceText,
		ListPriceValue: ParsePrice(listPriceText),
		EAN:            digitsOnly(e.ean.Run(d)),
		Description:    description,
		MainImage:      mainImage,
		AllImages:      images,
	}
	rec.LowConfidence = rec.Title == "" && len(rec.AllImages) == 0

	return rec, nil
}
