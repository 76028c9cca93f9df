package imgembed

// Input holds one document to inline and its resolution root.
type Input struct {
	// Document is the HTML (or, with Markdown set, markdown) text to process.
	Document string

	// BaseDir is the directory local image references resolve against.
	// Empty means the current working directory.
	BaseDir string

	// Markdown converts the document from markdown to a standalone HTML5
	// document before inlining.
	Markdown bool
}

// Stats counts successful replacements for one Inline call.
type Stats struct {
	// ImagesInlined is the number of src references replaced by data: URIs.
	ImagesInlined int

	// SrcsetAttrsTouched is the number of srcset attributes with at least
	// one item changed.
	SrcsetAttrsTouched int
}

// Result is the outcome of one Inline call.
type Result struct {
	// HTML is the rewritten document. References that failed to resolve
	// keep their original text.
	HTML string

	// Stats counts the successful replacements.
	Stats Stats

	// Warnings holds one line per distinct failing reference, in first
	// occurrence order.
	Warnings []string
}

// Validate checks that required input fields are present.
func (in Input) Validate() error {
	if in.Document == "" {
		return ErrEmptyDocument
	}
	return nil
}
