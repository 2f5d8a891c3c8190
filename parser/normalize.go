package parser

import (
	"fmt"
	"strconv"
	"strings"

	"greg-hacke/go-exif-tags/tags"
)

// ifdAliases renames the table's IFD labels to the names used in the
// lookup table. Labels not listed pass through unchanged.
var ifdAliases = map[string]string{
	"Image": "IFD",
	"Photo": "Exif",
}

const (
	userCommentTagID = tags.HexID(0x9286)
	undefinedType    = "UNDEFINED"
)

// CanonicalIfd returns the lookup-table name for a table IFD label.
func CanonicalIfd(label string) string {
	if alias, ok := ifdAliases[label]; ok {
		return alias
	}
	return label
}

// ShortName returns the part of a fully-qualified key after its last '.'.
func ShortName(fqKey string) (string, error) {
	pivot := strings.LastIndex(fqKey, ".")
	if pivot < 0 {
		return "", fmt.Errorf("%w: no '.' in %q", ErrMalformedKey, fqKey)
	}
	return fqKey[pivot+1:], nil
}

// ParseID parses a base-10 tag id.
func ParseID(dec string) (tags.HexID, error) {
	n, err := strconv.ParseUint(dec, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedID, err)
	}
	return tags.HexID(n), nil
}

// Normalize converts a table row into a lookup-table entry and the IFD it is
// filed under.
func Normalize(row Row) (string, tags.Entry, error) {
	name, err := ShortName(row.FQKey)
	if err != nil {
		return "", tags.Entry{}, err
	}

	id, err := ParseID(row.IDDec)
	if err != nil {
		return "", tags.Entry{}, err
	}

	entry := tags.Entry{
		ID:       id,
		Name:     name,
		TypeName: strings.ToUpper(row.Type),
	}

	ifd := CanonicalIfd(row.Ifd)

	// UserComment is declared with the invalid type "COMMENT".
	if entry.ID == userCommentTagID && ifd == "Exif" {
		entry.TypeName = undefinedType
	}

	return ifd, entry, nil
}

// Group normalizes every row and buckets the entries by IFD, keeping table
// order within each bucket.
func Group(rows []Row) (tags.Document, error) {
	doc := make(tags.Document)

	for i, row := range rows {
		ifd, entry, err := Normalize(row)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row.FQKey, err)
		}
		doc.Add(ifd, entry)
	}

	return doc, nil
}
