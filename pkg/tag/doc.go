// Package tag builds and serializes nested HTML element trees. Attributes keep
// insertion order and merge first-write-wins unless a caller asks to replace;
// CSS classes form an ordered set; children always take precedence over inner
// text or markup. Void elements such as input and br are looked up in a fixed
// table at serialization time and never render a closing tag.
package tag
