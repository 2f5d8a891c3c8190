package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"greg-hacke/go-exif-tags/tags"
)

func TestWriteHexDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHexDemo(&buf))

	want := "item1:\n" +
		"  hex_value: 0x0281\n" +
		"  string_value: some_string\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteHexDemo_ValueDecodesAsInt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHexDemo(&buf))

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 641, decoded["item1"]["hex_value"])
	assert.Equal(t, "some_string", decoded["item1"]["string_value"])
}

func TestWriteDocument(t *testing.T) {
	doc := tags.Document{
		"IFD":  {{ID: 0x0100, Name: "ImageWidth", TypeName: "LONG"}},
		"Exif": {{ID: 0x9286, Name: "UserComment", TypeName: "UNDEFINED"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, "id: 0x0100")
	assert.Contains(t, out, "name: ImageWidth")
	assert.Contains(t, out, "type_name: LONG")
	assert.Contains(t, out, "id: 0x9286")
	assert.Contains(t, out, "type_name: UNDEFINED")

	// Block style, unquoted ids, keys in sorted order.
	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, `"0x`)
	assert.NotContains(t, out, "'0x")
	assert.Less(t, strings.Index(out, "Exif:"), strings.Index(out, "IFD:"))

	var decoded tags.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)
}

func TestWriteDocument_Deterministic(t *testing.T) {
	doc := tags.Document{
		"IFD":     {{ID: 0x010f, Name: "Make", TypeName: "ASCII"}, {ID: 0x0110, Name: "Model", TypeName: "ASCII"}},
		"Exif":    {{ID: 0x829a, Name: "ExposureTime", TypeName: "RATIONAL"}},
		"GPSInfo": {{ID: 0x0000, Name: "GPSVersionID", TypeName: "BYTE"}},
		"Iop":     {{ID: 0x0001, Name: "InteroperabilityIndex", TypeName: "ASCII"}},
	}

	var first, second bytes.Buffer
	require.NoError(t, WriteDocument(&first, doc))
	require.NoError(t, WriteDocument(&second, doc))
	assert.Equal(t, first.String(), second.String())

	assert.Less(t, strings.Index(first.String(), "name: Make"), strings.Index(first.String(), "name: Model"))
}

func TestWriteTagsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOutputFile)

	doc := tags.Document{"IFD": {{ID: 0x0100, Name: "ImageWidth", TypeName: "LONG"}}}
	require.NoError(t, WriteTagsFile(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: 0x0100")

	// Only the output file remains.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultOutputFile, entries[0].Name())
}

func TestWriteTagsFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", DefaultOutputFile)

	err := WriteTagsFile(path, tags.Document{})
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), DefaultOutputFile)

	doc, err := Generate("testdata/tags.html", out, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, tags.Document{
		"IFD": {
			{ID: 0x0100, Name: "ImageWidth", TypeName: "LONG"},
			{ID: 0x010f, Name: "Make", TypeName: "ASCII"},
		},
		"Exif": {
			{ID: 0x829a, Name: "ExposureTime", TypeName: "RATIONAL"},
			{ID: 0x9286, Name: "UserComment", TypeName: "UNDEFINED"},
		},
		"GPSInfo": {
			{ID: 0x0000, Name: "GPSVersionID", TypeName: "BYTE"},
			{ID: 0x0002, Name: "GPSLatitude", TypeName: "RATIONAL"},
		},
		"Iop": {
			{ID: 0x0001, Name: "InteroperabilityIndex", TypeName: "ASCII"},
		},
	}, doc)

	index, err := tags.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 7, index.Len())

	it, err := index.Get("Exif", 0x9286)
	require.NoError(t, err)
	assert.Equal(t, "UserComment", it.Name)
	assert.Equal(t, tags.TypeUndefined, it.Type)
}

func TestGenerate_MalformedRowWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, DefaultInputFile)
	out := filepath.Join(dir, DefaultOutputFile)

	html := table(
		`<tr><td>0x0100</td><td>256</td><td>Image</td><td>Exif.Image.ImageWidth</td><td>Long</td><td>width</td></tr>`,
		`<tr><td>0x0101</td><td>257</td><td>Image</td></tr>`,
	)
	require.NoError(t, os.WriteFile(in, []byte(html), 0644))

	_, err := Generate(in, out, zap.NewNop())
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.NoFileExists(t, out)
}

func TestGenerate_MalformedKeyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, DefaultInputFile)
	out := filepath.Join(dir, DefaultOutputFile)

	html := table(`<tr><td>0x0100</td><td>256</td><td>Image</td><td>ImageWidth</td><td>Long</td><td>width</td></tr>`)
	require.NoError(t, os.WriteFile(in, []byte(html), 0644))

	_, err := Generate(in, out, zap.NewNop())
	assert.ErrorIs(t, err, ErrMalformedKey)
	assert.NoFileExists(t, out)
}

func TestGenerate_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := Generate(filepath.Join(dir, DefaultInputFile), filepath.Join(dir, DefaultOutputFile), zap.NewNop())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, DefaultOutputFile))
}
