package render

import "html"

// EscapeText escapes s for embedding as element text.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// EscapeAttr escapes s for embedding inside a double-quoted attribute
// value. html.EscapeString already covers quote characters, so attribute
// and text escaping share one implementation; the two names keep call
// sites explicit about context.
func EscapeAttr(s string) string {
	return html.EscapeString(s)
}
