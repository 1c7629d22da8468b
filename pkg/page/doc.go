// Package page wraps rendered forms in a complete HTML document using pongo2
// templates. An embedded default template is always available; callers can
// shadow it or add their own through a directory or fs.FS.
package page
