package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed file names used by gen-tags, relative to the working directory.
const (
	DefaultInputFile  = "tags.html"
	DefaultOutputFile = "tags.yaml"
)

// Labels names the columns of the tag table, in order.
var Labels = []string{
	"id_hex",
	"id_dec",
	"ifd",
	"fq_key",
	"type",
	"description",
}

var (
	// ErrMalformedRow indicates a data row whose cell count differs from len(Labels).
	ErrMalformedRow = errors.New("malformed row")

	// ErrMalformedKey indicates a fully-qualified key without a '.' separator.
	ErrMalformedKey = errors.New("malformed key")

	// ErrMalformedID indicates a decimal id that does not parse as a 16-bit integer.
	ErrMalformedID = errors.New("malformed id")
)

// Row is one data row of the tag table.
type Row struct {
	IDHex       string // e.g. "0x0100"
	IDDec       string // e.g. "256"
	Ifd         string // category label, e.g. "Image"
	FQKey       string // e.g. "Exif.Image.ImageWidth"
	Type        string // declared type, e.g. "Long"
	Description string
}

func newRow(values []string) Row {
	return Row{
		IDHex:       values[0],
		IDDec:       values[1],
		Ifd:         values[2],
		FQKey:       values[3],
		Type:        values[4],
		Description: values[5],
	}
}

// RowError reports a table row that does not have one cell per label.
type RowError struct {
	Position int // 1-based <tr> position in the document
	Values   []string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row fields count not the same as labels (row %d, %d fields, want %d): [%s]",
		e.Position, len(e.Values), len(Labels), strings.Join(e.Values, " | "))
}

func (e *RowError) Unwrap() error {
	return ErrMalformedRow
}
