package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractRows reads the tag table from an HTML file on disk.
func ExtractRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tag table: %w", err)
	}
	defer file.Close()

	return ExtractRowsFrom(file)
}

// ExtractRowsFrom parses an HTML document and returns one Row per <tr> that
// has <td> cells, in document order. Rows without <td> cells (the <th>
// header) are skipped. Any other row must have exactly len(Labels) cells.
func ExtractRowsFrom(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag table: %w", err)
	}

	var rows []Row
	position := 0

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			position++

			values := cellValues(n)
			if len(values) == 0 {
				return nil
			}
			if len(values) != len(Labels) {
				return &RowError{Position: position, Values: values}
			}

			rows = append(rows, newRow(values))
			return nil
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(doc); err != nil {
		return nil, err
	}

	return rows, nil
}

// cellValues returns the trimmed text of each <td> child of a row.
func cellValues(tr *html.Node) []string {
	var values []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			values = append(values, strings.TrimSpace(textContent(c)))
		}
	}
	return values
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	return sb.String()
}
