package markdown

// LinkKind distinguishes the syntactic forms a link event can originate from.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
)

// Link is the link-start event handed to a Transformer.
type Link struct {
	Kind        LinkKind
	Destination string
	Title       string
}

// Transformer rewrites link events while a body is being converted.
type Transformer interface {
	Transform(Link) Link
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(Link) Link

// Transform calls f(l).
func (f TransformerFunc) Transform(l Link) Link { return f(l) }

// Identity leaves every event unchanged.
var Identity Transformer = TransformerFunc(func(l Link) Link { return l })
