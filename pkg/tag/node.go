package tag

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
)

// ErrInvalidName is returned when a tag name is empty, non-ASCII, or contains
// characters that would break the length-based InnerHTML extraction.
var ErrInvalidName = errors.New("tag: invalid tag name")

// Formatter converts attribute values into their culture-aware string form.
// Format reports false when the value is not convertible, in which case the
// default fmt representation is used.
type Formatter interface {
	Format(value any) (string, bool)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(value any) (string, bool)

// Format implements Formatter.
func (f FormatterFunc) Format(value any) (string, bool) { return f(value) }

// Attr is a candidate attribute for AddAttributes.
type Attr struct {
	Key   string
	Value any
}

type attribute struct {
	key   string
	value string
}

const classKey = "class"

// Node is a mutable element in a markup tree. Builders chain calls on a Node
// and serialize it with String once the tree is complete.
type Node struct {
	name     string
	raw      bool // anonymous content node, content emitted verbatim
	attrs    []attribute
	classes  []string
	inner    string
	children []*Node
}

// Create returns a node for the supplied tag name or ErrInvalidName.
func Create(name string) (*Node, error) {
	name = strings.TrimSpace(name)
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return &Node{name: name}, nil
}

// New returns a node for name and panics when the name is invalid. It is meant
// for tag names written as literals.
func New(name string) *Node {
	node, err := Create(name)
	if err != nil {
		panic(err)
	}
	return node
}

// Text returns an anonymous node rendering s HTML-escaped.
func Text(s string) *Node {
	return &Node{raw: true, inner: html.EscapeString(s)}
}

// Raw returns an anonymous node rendering s verbatim. Callers are responsible
// for escaping.
func Raw(s string) *Node {
	return &Node{raw: true, inner: s}
}

// ValidName reports whether name can be used as a tag name.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9', c == '-', c == ':', c == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Name returns the tag name; anonymous content nodes return "".
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// AddAttribute sets key to value unless key already exists.
func (n *Node) AddAttribute(key, value string) *Node {
	return n.MergeAttribute(key, value, false)
}

// MergeAttribute sets key to value. An existing value is kept unless replace
// is true. Class values are routed through AddClass.
func (n *Node) MergeAttribute(key, value string, replace bool) *Node {
	key = strings.TrimSpace(key)
	if key == "" || n.raw {
		return n
	}
	if strings.EqualFold(key, classKey) {
		if replace {
			n.classes = nil
		}
		return n.AddClass(value)
	}
	if idx := n.indexOf(key); idx >= 0 {
		if replace {
			n.attrs[idx].value = value
		}
		return n
	}
	n.attrs = append(n.attrs, attribute{key: key, value: value})
	return n
}

// AddAttributeIf adds the attribute when cond is true.
func (n *Node) AddAttributeIf(cond bool, key, value string) *Node {
	if !cond {
		return n
	}
	return n.AddAttribute(key, value)
}

// AddAttributeIfNotBlank adds the attribute when value contains non-space
// characters.
func (n *Node) AddAttributeIfNotBlank(key, value string) *Node {
	if strings.TrimSpace(value) == "" {
		return n
	}
	return n.AddAttribute(key, value)
}

// AddBoolAttribute adds a boolean attribute rendered as key="key".
func (n *Node) AddBoolAttribute(key string) *Node {
	return n.AddAttribute(key, key)
}

// AddBoolAttributeIf adds a boolean attribute when cond is true.
func (n *Node) AddBoolAttributeIf(cond bool, key string) *Node {
	if !cond {
		return n
	}
	return n.AddBoolAttribute(key)
}

// AddAttributes merges attrs in order without replacing existing keys. Values
// the formatter can convert use its result, everything else falls back to
// fmt.Sprint. A nil formatter always uses the fallback.
func (n *Node) AddAttributes(f Formatter, attrs ...Attr) *Node {
	for _, attr := range attrs {
		n.AddAttribute(attr.Key, FormatValue(f, attr.Value))
	}
	return n
}

// AttrsFromMap converts m into attributes ordered by key.
func AttrsFromMap(m map[string]any) []Attr {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Attr, 0, len(keys))
	for _, key := range keys {
		out = append(out, Attr{Key: key, Value: m[key]})
	}
	return out
}

// FormatValue converts value using f when possible and fmt.Sprint otherwise.
// Nil values become "".
func FormatValue(f Formatter, value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	if f != nil {
		if s, ok := f.Format(value); ok {
			return s
		}
	}
	return fmt.Sprint(value)
}

// Attribute returns the value stored for key. The class attribute reflects the
// current class set.
func (n *Node) Attribute(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	if strings.EqualFold(key, classKey) {
		if len(n.classes) == 0 {
			return "", false
		}
		return strings.Join(n.classes, " "), true
	}
	if idx := n.indexOf(key); idx >= 0 {
		return n.attrs[idx].value, true
	}
	return "", false
}

// AddClass adds each whitespace separated class once. Blank input is ignored.
func (n *Node) AddClass(classes ...string) *Node {
	if n.raw {
		return n
	}
	for _, value := range classes {
		for _, class := range strings.Fields(value) {
			if n.HasClass(class) {
				continue
			}
			if len(n.classes) == 0 && n.indexOf(classKey) < 0 {
				n.attrs = append(n.attrs, attribute{key: classKey})
			}
			n.classes = append(n.classes, class)
		}
	}
	return n
}

// AddClassIf adds classes when cond is true.
func (n *Node) AddClassIf(cond bool, classes ...string) *Node {
	if !cond {
		return n
	}
	return n.AddClass(classes...)
}

// HasClass reports whether class is present.
func (n *Node) HasClass(class string) bool {
	if n == nil {
		return false
	}
	for _, existing := range n.classes {
		if existing == class {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list in insertion order.
func (n *Node) Classes() []string {
	if n == nil || len(n.classes) == 0 {
		return nil
	}
	return append([]string(nil), n.classes...)
}

// AddChild appends child. Nil children are ignored.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return n
	}
	n.children = append(n.children, child)
	return n
}

// AddChildIf appends child when cond is true.
func (n *Node) AddChildIf(cond bool, child *Node) *Node {
	if !cond {
		return n
	}
	return n.AddChild(child)
}

// AddChildFunc calls build and appends its result when cond is true. The
// predicate is evaluated before build runs.
func (n *Node) AddChildFunc(cond bool, build func() *Node) *Node {
	if !cond || build == nil {
		return n
	}
	return n.AddChild(build())
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// SetText replaces the inner content with HTML-escaped text.
func (n *Node) SetText(text string) *Node {
	n.inner = html.EscapeString(text)
	return n
}

// SetHTML replaces the inner content with raw markup.
func (n *Node) SetHTML(markup string) *Node {
	n.inner = markup
	return n
}

// AddContent appends raw markup to the inner content.
func (n *Node) AddContent(markup string) *Node {
	n.inner += markup
	return n
}

// AddContentIf appends raw markup when cond is true.
func (n *Node) AddContentIf(cond bool, markup string) *Node {
	if !cond {
		return n
	}
	return n.AddContent(markup)
}

// AddContentIfNotBlank appends raw markup when it contains non-space
// characters.
func (n *Node) AddContentIfNotBlank(markup string) *Node {
	return n.AddContentIf(strings.TrimSpace(markup) != "", markup)
}

// ForEach calls build for each item and appends the non-nil results to n.
func ForEach[T any](n *Node, items []T, build func(T) *Node) *Node {
	for _, item := range items {
		n.AddChild(build(item))
	}
	return n
}

// Each calls visit for each item with n as the target node.
func Each[T any](n *Node, items []T, visit func(T, *Node)) *Node {
	for _, item := range items {
		visit(item, n)
	}
	return n
}

func (n *Node) indexOf(key string) int {
	for i, attr := range n.attrs {
		if attr.key == key {
			return i
		}
	}
	return -1
}
