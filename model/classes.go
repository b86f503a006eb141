package model

// Layout class IDs produced by the PP-DocLayoutV3 detector.
const (
	ClassDocumentTitle = iota
	ClassParagraphTitle
	ClassText
	ClassPageNumber
	ClassAbstract
	ClassTableOfContents
	ClassReferences
	ClassFootnote
	ClassTable
	ClassHeader
	ClassFooter
	ClassAlgorithm
	ClassFormula
	ClassFormulaNumber
	ClassImage
	ClassFigureCaption
	ClassTableCaption
	ClassSeal
	ClassFigureTitle
	ClassFigure
	ClassHeaderImage
	ClassFooterImage
	ClassAsideText
)

// LayoutClasses lists the 23 layout class names from PP-DocLayoutV3,
// indexed by class ID.
var LayoutClasses = []string{
	"document_title",
	"paragraph_title",
	"text",
	"page_number",
	"abstract",
	"table_of_contents",
	"references",
	"footnote",
	"table",
	"header",
	"footer",
	"algorithm",
	"formula",
	"formula_number",
	"image",
	"figure_caption",
	"table_caption",
	"seal",
	"figure_title",
	"figure",
	"header_image",
	"footer_image",
	"aside_text",
}

// KnownClass reports whether id is a valid entry in the class table.
func KnownClass(id int) bool {
	return id >= 0 && id < len(LayoutClasses)
}

// ClassName returns the name for a class ID, or "" for unknown IDs.
func ClassName(id int) string {
	if !KnownClass(id) {
		return ""
	}
	return LayoutClasses[id]
}

// ClassID returns the ID for a class name, or -1 if the name is unknown.
func ClassID(name string) int {
	for i, n := range LayoutClasses {
		if n == name {
			return i
		}
	}
	return -1
}

// DefaultNavigableClasses returns the set of classes navigable in rail
// mode by default: readable text regions only, not page furniture.
func DefaultNavigableClasses() map[int]bool {
	return map[int]bool{
		ClassDocumentTitle:  true,
		ClassParagraphTitle: true,
		ClassText:           true,
		ClassAbstract:       true,
		ClassReferences:     true,
		ClassFootnote:       true,
		ClassAlgorithm:      true,
		ClassAsideText:      true,
	}
}
