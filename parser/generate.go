package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"greg-hacke/go-exif-tags/tags"
)

// Generate reads the HTML tag table at inputPath and writes the grouped YAML
// lookup table to outputPath. Nothing is written unless every row is valid.
func Generate(inputPath, outputPath string, log *zap.Logger) (tags.Document, error) {
	log.Info("Parsing tag table", zap.String("path", inputPath))

	rows, err := ExtractRows(inputPath)
	if err != nil {
		return nil, err
	}
	log.Debug("Extracted rows", zap.Int("rows", len(rows)))

	doc, err := Group(rows)
	if err != nil {
		return nil, err
	}

	if err := WriteTagsFile(outputPath, doc); err != nil {
		return nil, err
	}

	log.Info("Wrote tag table",
		zap.String("path", outputPath),
		zap.Int("ifds", len(doc)),
		zap.Int("tags", doc.Count()))

	return doc, nil
}

// WriteDocument encodes the lookup table as block-style YAML.
func WriteDocument(w io.Writer, doc tags.Document) error {
	return encode(w, doc)
}

// WriteTagsFile writes the lookup table to path via a temporary file in the
// same directory, so a failed write never leaves a partial table behind.
func WriteTagsFile(path string, doc tags.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tags-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if err := WriteDocument(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// WriteHexDemo writes a fixed record showing how HexID values are rendered.
func WriteHexDemo(w io.Writer) error {
	data := map[string]map[string]interface{}{
		"item1": {
			"string_value": "some_string",
			"hex_value":    tags.HexID(641),
		},
	}
	return encode(w, data)
}

func encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
