package pptx

import (
	"fmt"
	"path"
	"strings"
)

const (
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	RelTypeOfficeDocument = nsRelationships + "/officeDocument"
	RelTypeSlide          = nsRelationships + "/slide"
	RelTypeNotesSlide     = nsRelationships + "/notesSlide"
	RelTypeSlideLayout    = nsRelationships + "/slideLayout"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// External reports whether the target lives outside the package.
func (r Relationship) External() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

// relsPartName returns the relationships part for source; "" is the package.
func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// Relationships lists the relationships declared by a part ("" for the
// package itself). A part without a .rels part has none.
func (p *Package) Relationships(source string) ([]Relationship, error) {
	return p.relationships(strings.TrimPrefix(source, "/"))
}

func (p *Package) relationships(source string) ([]Relationship, error) {
	name := relsPartName(source)
	if !p.HasPart(name) {
		return nil, nil
	}
	doc, err := p.xmlPart(name)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	var rels []Relationship
	for _, e := range root.SelectElements("Relationship") {
		rels = append(rels, Relationship{
			ID:         e.SelectAttrValue("Id", ""),
			Type:       e.SelectAttrValue("Type", ""),
			Target:     e.SelectAttrValue("Target", ""),
			TargetMode: e.SelectAttrValue("TargetMode", ""),
		})
	}
	return rels, nil
}

// relatedPart resolves the part a relationship id points at. A non-empty
// relType must match the relationship's type.
func (p *Package) relatedPart(source, rID, relType string) (string, error) {
	rels, err := p.relationships(source)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.ID == rID {
			if rel.External() {
				return "", fmt.Errorf("relationship %s of %s is external", rID, source)
			}
			if relType != "" && rel.Type != relType {
				return "", fmt.Errorf("%w: relationship %s of %s is %s, want %s",
					ErrInvalidPackage, rID, source, path.Base(rel.Type), path.Base(relType))
			}
			return resolveTarget(source, rel.Target), nil
		}
	}
	return "", fmt.Errorf("%w: relationship %s of %s", ErrPartNotFound, rID, source)
}

// partByType returns the first part related to source with the given type.
func (p *Package) partByType(source, relType string) (string, error) {
	rels, err := p.relationships(source)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type == relType && !rel.External() {
			return resolveTarget(source, rel.Target), nil
		}
	}
	return "", fmt.Errorf("%w: no %s relationship from %q", ErrPartNotFound, path.Base(relType), source)
}

// DropRel removes relationship rID from source. The target part stays in
// the archive until Save finds it unreachable.
func (p *Package) DropRel(source, rID string) error {
	source = strings.TrimPrefix(source, "/")
	doc, err := p.xmlPart(relsPartName(source))
	if err != nil {
		return err
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: empty relationships for %s", ErrInvalidPackage, source)
	}
	for _, e := range root.SelectElements("Relationship") {
		if e.SelectAttrValue("Id", "") == rID {
			root.RemoveChild(e)
			return nil
		}
	}
	return fmt.Errorf("%w: relationship %s of %s", ErrPartNotFound, rID, source)
}
