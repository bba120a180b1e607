package card

// Element and action type names.
const (
	ElementTextBlock = "TextBlock"
	ElementImage     = "Image"
	ElementContainer = "Container"
	ElementColumnSet = "ColumnSet"
	ElementColumn    = "Column"
	ElementFactSet   = "FactSet"

	InputText      = "Input.Text"
	InputDate      = "Input.Date"
	InputNumber    = "Input.Number"
	InputChoiceSet = "Input.ChoiceSet"

	ActionSubmit  = "Action.Submit"
	ActionOpenURL = "Action.OpenUrl"
)

// TextOption adjusts a TextBlock.
type TextOption func(*Element)

func Bolder() TextOption              { return func(e *Element) { e.Weight = "Bolder" } }
func Lighter() TextOption             { return func(e *Element) { e.Weight = "Lighter" } }
func Sized(size string) TextOption    { return func(e *Element) { e.Size = size } }
func Colored(color string) TextOption { return func(e *Element) { e.Color = color } }
func Wrapped() TextOption             { return func(e *Element) { e.Wrap = true } }
func Subtle() TextOption              { return func(e *Element) { e.IsSubtle = true } }
func Spaced(spacing string) TextOption {
	return func(e *Element) { e.Spacing = spacing }
}
func Aligned(alignment string) TextOption {
	return func(e *Element) { e.HorizontalAlignment = alignment }
}

// TextBlock builds a text element.
func TextBlock(text string, opts ...TextOption) Element {
	el := Element{Type: ElementTextBlock, Text: text}
	for _, opt := range opts {
		opt(&el)
	}
	return el
}

// Image builds an image element.
func Image(url, size, altText string) Element {
	return Element{Type: ElementImage, URL: url, Size: size, AltText: altText}
}

// Container groups elements.
func Container(items ...Element) Element {
	return Element{Type: ElementContainer, Items: items}
}

// Column builds a column of a ColumnSet.
func Column(width string, items ...Element) Element {
	return Element{Type: ElementColumn, Width: width, Items: items}
}

// ColumnSet lays columns out horizontally.
func ColumnSet(columns ...Element) Element {
	return Element{Type: ElementColumnSet, Columns: columns}
}

// FactSet builds a title/value list.
func FactSet(facts ...Fact) Element {
	return Element{Type: ElementFactSet, Facts: facts}
}

// Submit builds an Action.Submit carrying data.
func Submit(title string, data map[string]any) Action {
	return Action{Type: ActionSubmit, Title: title, Data: data}
}

// OpenURL builds an Action.OpenUrl.
func OpenURL(title, url string) Action {
	return Action{Type: ActionOpenURL, Title: title, URL: url}
}
