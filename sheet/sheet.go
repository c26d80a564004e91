// Package sheet persists confirmed listings to the export workbook.
// The column layout reproduces the marketplace upload template, so the
// output file can be handed to the bulk importer unchanged.
package sheet

import (
	"bytes"
	"errors"
	"io/fs"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/imadama/Bol-scrapper/models"
)

// Columns is the fixed template header, in template order. The extracted
// fields map into it; the remaining columns are operator-entered.
var Columns = []string{
	"Productnaam",
	"Beschrijving",
	"Interne referentie",
	"EAN",
	"Conditie",
	"Conditie commentaar",
	"Voorraad",
	"Prijs",
	"Levertijd",
	"Afleverwijze",
	"Te koop",
	"Hoofdafbeelding",
	"Marktdeelnemer",
	"Additionele afbeeldingen",
}

const worksheet = "Sheet1"

// Store appends listings to an xlsx workbook on disk. Appends are serialized
// by a mutex: the edit/confirm flow is single-operator, and excelize has no
// concurrent-writer story anyway.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store writing to path. The workbook is created lazily
// on first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the workbook location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one confirmed listing as a new row.
func (s *Store) Append(l *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return models.NewScrapeError(models.ErrCodeSheetWrite, "open workbook", err)
	}
	defer f.Close()

	rows, err := f.GetRows(worksheet)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeSheetWrite, "read workbook rows", err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeSheetWrite, "compute row position", err)
	}

	row := rowFor(l)
	if err := f.SetSheetRow(worksheet, cell, &row); err != nil {
		return models.NewScrapeError(models.ErrCodeSheetWrite, "write row", err)
	}
	if err := f.SaveAs(s.path); err != nil {
		return models.NewScrapeError(models.ErrCodeSheetWrite, "save workbook", err)
	}
	return nil
}

// Rows returns all saved data rows (header excluded). Short rows are padded
// so every returned row has len(Columns) cells.
func (s *Store) Rows() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSheetWrite, "open workbook", err)
	}
	defer f.Close()

	rows, err := f.GetRows(worksheet)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSheetWrite, "read workbook rows", err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for len(row) < len(Columns) {
			row = append(row, "")
		}
		data = append(data, row)
	}
	return data, nil
}

// Export returns the workbook file bytes for download.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSheetWrite, "open workbook", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSheetWrite, "serialize workbook", err)
	}
	return buf.Bytes(), nil
}

// open loads the workbook, creating it with the template header when the
// file does not exist yet.
func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	f = excelize.NewFile()
	header := Columns
	if err := f.SetSheetRow(worksheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SaveAs(s.path); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// rowFor maps a listing into the template columns. The template's "Prijs"
// column is the marketplace asking price, which the original workflow fills
// from the reference (list) price, not the scraped sale price.
func rowFor(l *models.Listing) []string {
	price := ""
	if l.Record.ListPriceValue != nil {
		price = strconv.FormatFloat(*l.Record.ListPriceValue, 'f', -1, 64)
	}
	return []string{
		l.Record.Title,
		l.Record.Description,
		l.InternalReference,
		l.Record.EAN,
		l.Condition,
		l.ConditionComment,
		strconv.Itoa(l.Stock),
		price,
		l.DeliveryTime,
		l.DeliveryMethod,
		l.ForSale,
		l.Record.MainImage,
		l.Participant,
		l.Record.JoinedImages(),
	}
}
