// Package parser reads chart rows and chart metadata from xlsx workbooks.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
)

// relationship is one entry of an OPC .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
}

// kind reports whether the relationship type ends with the given name,
// e.g. ".../relationships/drawing".
func (r relationship) kind(name string) bool {
	return strings.HasSuffix(strings.ToLower(r.Type), "/"+name)
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	f, err := r.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	for depth := 1; depth > 0; {
		token, err := decoder.Token()
		if err != nil {
			return sb.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return sb.String(), nil
}

// eachStart calls fn for every start element named local.
func eachStart(data []byte, local string, fn func(xml.StartElement)) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == local {
			fn(se)
		}
	}
}

func parseRelationships(data []byte) []relationship {
	var rels []relationship
	eachStart(data, "Relationship", func(se xml.StartElement) {
		rels = append(rels, relationship{
			ID:     attrValue(se, "Id"),
			Type:   attrValue(se, "Type"),
			Target: attrValue(se, "Target"),
		})
	})
	return rels
}

// resolveTarget resolves a relationship target against the directory of the
// part owning the relationship. Targets starting with "/" are package absolute.
func resolveTarget(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}

// parseWorkbookSheets maps rId to sheet name.
func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string)
	eachStart(data, "sheet", func(se xml.StartElement) {
		name, rID := attrValue(se, "name"), attrValue(se, "id")
		if name != "" && rID != "" {
			result[rID] = name
		}
	})
	return result
}

// parseWorkbookRels maps sheet name to worksheet part path.
func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string)
	for _, rel := range parseRelationships(data) {
		if sheetName, ok := sheetsInfo[rel.ID]; ok && rel.kind("worksheet") {
			result[sheetName] = resolveTarget(rel.Target, "xl")
		}
	}
	return result
}

// findDrawing returns the drawing part referenced by a worksheet.
func findDrawing(sheetRels []byte, sheetPath string) string {
	for _, rel := range parseRelationships(sheetRels) {
		if rel.kind("drawing") {
			return resolveTarget(rel.Target, path.Dir(sheetPath))
		}
	}
	return ""
}

// parseDrawingRels maps rId to the chart parts of a drawing.
func parseDrawingRels(data []byte, drawingPath string) map[string]string {
	result := make(map[string]string)
	for _, rel := range parseRelationships(data) {
		if rel.kind("chart") {
			result[rel.ID] = resolveTarget(rel.Target, path.Dir(drawingPath))
		}
	}
	return result
}

// relsPathFor returns the relationships part of a package part,
// e.g. xl/worksheets/sheet1.xml -> xl/worksheets/_rels/sheet1.xml.rels.
func relsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}
