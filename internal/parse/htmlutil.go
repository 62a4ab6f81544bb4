package parse

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// Table is one HTML table reduced to text: a header row (possibly empty)
// and the body rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ExtractTables parses an HTML payload and returns every table as text
// cells. Header cells come from <th>; tables without <th> get an empty
// header slice and all rows in Rows.
func ExtractTables(payload []byte) ([]Table, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	var tables []Table
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, tableFromNode(n))
		}
	})
	return tables, nil
}

func tableFromNode(table *html.Node) Table {
	var t Table
	walk(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}
		var cells []string
		isHeader := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "th":
				isHeader = true
				cells = append(cells, CollapseWhitespace(nodeText(c)))
			case "td":
				cells = append(cells, CollapseWhitespace(nodeText(c)))
			}
		}
		if len(cells) == 0 {
			return
		}
		if isHeader && t.Headers == nil {
			t.Headers = cells
			return
		}
		t.Rows = append(t.Rows, cells)
	})
	return t
}

// HeaderIndex returns the index of the first header containing want
// (case-insensitive), or -1.
func (t Table) HeaderIndex(want string) int {
	for i, h := range t.Headers {
		if strings.Contains(strings.ToLower(h), strings.ToLower(want)) {
			return i
		}
	}
	return -1
}

// Cell safely reads row[i], returning "" when the row is short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ErrAttrNotFound reports that no element carried the requested attribute.
var ErrAttrNotFound = errors.New("attribute not found in document")

// FindAttr walks the document for the first element carrying the named
// attribute and returns its value. The html parser has already decoded
// entity-encoded attribute values by this point.
func FindAttr(payload []byte, attrKey string) (string, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	var val string
	found := false
	walk(doc, func(n *html.Node) {
		if found || n.Type != html.ElementNode {
			return
		}
		for _, a := range n.Attr {
			if a.Key == attrKey {
				val = a.Val
				found = true
				return
			}
		}
	})
	if !found {
		return "", ErrAttrNotFound
	}
	return val, nil
}

// DocumentText flattens an HTML payload to its visible text, preserving
// rough line structure for the keyword detector and diagnostics.
func DocumentText(payload []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return nodeText(doc), nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "br", "tr", "p", "div", "li":
				b.WriteString("\n")
			}
		}
	})
	return b.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
