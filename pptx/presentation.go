package pptx

import (
	"fmt"

	"github.com/beevik/etree"
)

// Presentation is the main document part (ppt/presentation.xml).
type Presentation struct {
	pkg  *Package
	part string
	doc  *etree.Document
}

// Presentation locates the main document through the package relationships.
func (p *Package) Presentation() (*Presentation, error) {
	part, err := p.partByType("", RelTypeOfficeDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	doc, err := p.xmlPart(part)
	if err != nil {
		return nil, err
	}
	if doc.Root() == nil || doc.Root().Tag != "presentation" {
		return nil, fmt.Errorf("%w: %s is not a presentation", ErrInvalidPackage, part)
	}
	return &Presentation{pkg: p, part: part, doc: doc}, nil
}

// PartName returns the presentation part name.
func (pr *Presentation) PartName() string {
	return pr.part
}

func (pr *Presentation) slideIDList() *etree.Element {
	return pr.doc.Root().SelectElement("sldIdLst")
}

func (pr *Presentation) slideIDs() []*etree.Element {
	lst := pr.slideIDList()
	if lst == nil {
		return nil
	}
	return lst.SelectElements("sldId")
}

// SlideCount returns the number of slides in presentation order.
func (pr *Presentation) SlideCount() int {
	return len(pr.slideIDs())
}

// Slide returns the slide at index (0-based, presentation order).
func (pr *Presentation) Slide(index int) (*Slide, error) {
	ids := pr.slideIDs()
	if index < 0 || index >= len(ids) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSlideNotFound, index, len(ids))
	}
	rID := relID(ids[index])
	part, err := pr.pkg.relatedPart(pr.part, rID, RelTypeSlide)
	if err != nil {
		return nil, err
	}
	doc, err := pr.pkg.xmlPart(part)
	if err != nil {
		return nil, err
	}
	return &Slide{Index: index, Part: part, pkg: pr.pkg, doc: doc}, nil
}

// Slides returns every slide in presentation order.
func (pr *Presentation) Slides() ([]*Slide, error) {
	n := pr.SlideCount()
	slides := make([]*Slide, 0, n)
	for i := 0; i < n; i++ {
		s, err := pr.Slide(i)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, nil
}

// DeleteSlide removes the slide at index. The presentation relationship is
// dropped before the sldId entry leaves the list; the orphaned slide part
// is discarded on Save.
func (pr *Presentation) DeleteSlide(index int) error {
	ids := pr.slideIDs()
	if index < 0 || index >= len(ids) {
		return fmt.Errorf("%w: index %d of %d", ErrSlideNotFound, index, len(ids))
	}
	sldID := ids[index]
	if err := pr.pkg.DropRel(pr.part, relID(sldID)); err != nil {
		return fmt.Errorf("drop slide relationship: %w", err)
	}
	pr.slideIDList().RemoveChild(sldID)
	return nil
}

// relID returns the r:id attribute, matched by namespace so templates that
// bind the relationships namespace to another prefix still resolve.
func relID(e *etree.Element) string {
	for _, a := range e.Attr {
		if a.Key == "id" && (a.Space == "r" || a.NamespaceURI() == nsRelationships) {
			return a.Value
		}
	}
	return ""
}
