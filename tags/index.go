package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrTagNotFound indicates no tag is registered for the IFD and id/name.
	ErrTagNotFound = errors.New("tag not found")

	// ErrUnknownType indicates a type_name that is not an EXIF type.
	ErrUnknownType = errors.New("unknown tag type")

	// ErrDuplicateTag indicates an id or name defined twice within one IFD.
	ErrDuplicateTag = errors.New("duplicate tag")
)

// EXIF value types.
const (
	TypeByte           = uint16(1)
	TypeASCII          = uint16(2)
	TypeShort          = uint16(3)
	TypeLong           = uint16(4)
	TypeRational       = uint16(5)
	TypeUndefined      = uint16(7)
	TypeSignedLong     = uint16(9)
	TypeSignedRational = uint16(10)
)

// TypeNames maps a type_name as written in the lookup table to its type id.
var TypeNames = map[string]uint16{
	"BYTE":      TypeByte,
	"ASCII":     TypeASCII,
	"SHORT":     TypeShort,
	"LONG":      TypeLong,
	"RATIONAL":  TypeRational,
	"UNDEFINED": TypeUndefined,
	"SLONG":     TypeSignedLong,
	"SRATIONAL": TypeSignedRational,
}

// Found in real data but not part of the baseline type set. Tags using them
// are skipped on load.
var nonStandardTypes = map[string]struct{}{
	"SSHORT": {},
	"FLOAT":  {},
	"DOUBLE": {},
}

// IndexedTag is a tag resolved from the lookup table.
type IndexedTag struct {
	ID   uint16
	Name string
	Ifd  string
	Type uint16
}

func (it *IndexedTag) String() string {
	return fmt.Sprintf("TAG<ID=(0x%04x) NAME=[%s] IFD=[%s]>", it.ID, it.Name, it.Ifd)
}

// Index looks up tags by IFD and either id or name.
type Index struct {
	byID   map[string]map[uint16]*IndexedTag
	byName map[string]map[string]*IndexedTag
	count  int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		byID:   make(map[string]map[uint16]*IndexedTag),
		byName: make(map[string]map[string]*IndexedTag),
	}
}

// Add registers a tag. Ids and names must be unique within an IFD.
func (ix *Index) Add(it *IndexedTag) error {
	family, ok := ix.byID[it.Ifd]
	if !ok {
		family = make(map[uint16]*IndexedTag)
		ix.byID[it.Ifd] = family
	}
	if _, ok := family[it.ID]; ok {
		return fmt.Errorf("%w: id 0x%04x in IFD %s", ErrDuplicateTag, it.ID, it.Ifd)
	}

	familyR, ok := ix.byName[it.Ifd]
	if !ok {
		familyR = make(map[string]*IndexedTag)
		ix.byName[it.Ifd] = familyR
	}
	if _, ok := familyR[it.Name]; ok {
		return fmt.Errorf("%w: name %s in IFD %s", ErrDuplicateTag, it.Name, it.Ifd)
	}

	family[it.ID] = it
	familyR[it.Name] = it
	ix.count++

	return nil
}

// Get returns the tag with the given id in the IFD.
func (ix *Index) Get(ifd string, id uint16) (*IndexedTag, error) {
	it, ok := ix.byID[ifd][id]
	if !ok {
		return nil, fmt.Errorf("%w: id 0x%04x in IFD %s", ErrTagNotFound, id, ifd)
	}
	return it, nil
}

// GetWithName returns the tag with the given name in the IFD.
func (ix *Index) GetWithName(ifd, name string) (*IndexedTag, error) {
	it, ok := ix.byName[ifd][name]
	if !ok {
		return nil, fmt.Errorf("%w: name %s in IFD %s", ErrTagNotFound, name, ifd)
	}
	return it, nil
}

// Len returns the number of indexed tags.
func (ix *Index) Len() int {
	return ix.count
}

// Ifds returns the indexed IFD names, sorted.
func (ix *Index) Ifds() []string {
	names := make([]string, 0, len(ix.byID))
	for name := range ix.byID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a generated lookup table from disk.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tag table: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a lookup table and indexes every tag whose type is known.
func Load(r io.Reader) (*Index, error) {
	doc := make(Document)
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode tag table: %w", err)
	}

	ix := NewIndex()

	// Iterate in a fixed order so that the first reported error is stable.
	ifds := make([]string, 0, len(doc))
	for ifd := range doc {
		ifds = append(ifds, ifd)
	}
	sort.Strings(ifds)

	for _, ifd := range ifds {
		for _, e := range doc[ifd] {
			if _, skip := nonStandardTypes[e.TypeName]; skip {
				continue
			}

			typeID, ok := TypeNames[e.TypeName]
			if !ok {
				return nil, fmt.Errorf("%w: %q for tag %s (%s) in IFD %s", ErrUnknownType, e.TypeName, e.Name, e.ID, ifd)
			}

			err := ix.Add(&IndexedTag{
				ID:   uint16(e.ID),
				Name: e.Name,
				Ifd:  ifd,
				Type: typeID,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return ix, nil
}
