// Package pptx edits PresentationML packages in place.
//
// Only the parts that are touched get parsed; everything else in the
// template is carried through byte for byte.
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/beevik/etree"
)

var (
	ErrInvalidPackage = errors.New("invalid presentation package")
	ErrPartNotFound   = errors.New("part not found")
	ErrSlideNotFound  = errors.New("slide not found")
	ErrShapeNotFound  = errors.New("shape not found")
	ErrNoTextFrame    = errors.New("shape has no text frame")
)

const contentTypesPart = "[Content_Types].xml"

type partEntry struct {
	name     string // as stored in the archive
	data     []byte
	modified time.Time
}

// Package is an opened OPC container (.pptx). Part names compare
// case-insensitively, so entries, order and docs are keyed by partKey.
type Package struct {
	entries map[string]*partEntry
	order   []string
	docs    map[string]*etree.Document
}

// partKey normalises a part name for lookup.
func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// Open reads the package at path.
func Open(filePath string) (*Package, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package: %w", err)
	}
	return OpenBytes(data)
}

// OpenBytes reads a package held in memory.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	p := &Package{
		entries: make(map[string]*partEntry),
		docs:    make(map[string]*etree.Document),
	}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read zip entry %s: %w", f.Name, err)
		}
		name := strings.TrimPrefix(f.Name, "/")
		key := partKey(name)
		if _, dup := p.entries[key]; dup {
			return nil, fmt.Errorf("%w: duplicate part name %s", ErrInvalidPackage, name)
		}
		p.entries[key] = &partEntry{name: name, data: b, modified: f.Modified}
		p.order = append(p.order, key)
	}

	if !p.HasPart(contentTypesPart) {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPackage, contentTypesPart)
	}
	if !p.HasPart(relsPartName("")) {
		return nil, fmt.Errorf("%w: missing package relationships", ErrInvalidPackage)
	}
	return p, nil
}

// HasPart reports whether the package holds a part with this name.
func (p *Package) HasPart(name string) bool {
	_, ok := p.entries[partKey(name)]
	return ok
}

// PartNames lists the parts in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.order))
	for i, key := range p.order {
		names[i] = p.entries[key].name
	}
	return names
}

// xmlPart returns the parsed document for a part. Documents are cached, so
// edits made through the returned tree are what Save writes back.
func (p *Package) xmlPart(name string) (*etree.Document, error) {
	key := partKey(name)
	if doc, ok := p.docs[key]; ok {
		return doc, nil
	}
	entry, ok := p.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(entry.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	p.docs[key] = doc
	return doc, nil
}

// Save writes the package to filePath, replacing any existing file.
func (p *Package) Save(filePath string) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}
	return nil
}

// WriteTo serialises the package. Parts no longer reachable through the
// relationship graph are left out along with their content-type overrides.
// Entry order and timestamps come from the source archive, so the same
// input always produces the same bytes.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	keep, err := p.reachableParts()
	if err != nil {
		return 0, err
	}
	if err := p.pruneContentTypes(keep); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, key := range p.order {
		if !keep[key] {
			continue
		}
		name := p.entries[key].name
		data, err := p.partBytes(key)
		if err != nil {
			zw.Close()
			return cw.n, err
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: p.entries[key].modified,
		})
		if err != nil {
			zw.Close()
			return cw.n, fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			zw.Close()
			return cw.n, fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finalize zip: %w", err)
	}
	return cw.n, nil
}

func (p *Package) partBytes(key string) ([]byte, error) {
	if doc, ok := p.docs[key]; ok {
		b, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", p.entries[key].name, err)
		}
		return b, nil
	}
	return p.entries[key].data, nil
}

// reachableParts walks the relationship graph from the package root. The
// result is keyed by partKey.
func (p *Package) reachableParts() (map[string]bool, error) {
	keep := map[string]bool{partKey(contentTypesPart): true}
	queue := []string{""}
	seen := map[string]bool{"": true}

	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]

		relsName := relsPartName(source)
		if !p.HasPart(relsName) {
			continue
		}
		keep[partKey(relsName)] = true
		rels, err := p.relationships(source)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			if rel.External() {
				continue
			}
			target := resolveTarget(source, rel.Target)
			if seen[partKey(target)] {
				continue
			}
			seen[partKey(target)] = true
			if p.HasPart(target) {
				keep[partKey(target)] = true
				queue = append(queue, target)
			}
		}
	}
	return keep, nil
}

func (p *Package) pruneContentTypes(keep map[string]bool) error {
	doc, err := p.xmlPart(contentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: empty %s", ErrInvalidPackage, contentTypesPart)
	}
	for _, o := range root.SelectElements("Override") {
		if !keep[partKey(o.SelectAttrValue("PartName", ""))] {
			root.RemoveChild(o)
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// resolveTarget turns a relationship target into a part name.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir("/"+source), target), "/")
}
