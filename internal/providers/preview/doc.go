// Package preview probes the target site of a project once so the builder
// can show its title, theme color and icons next to the live phone frame.
// Pages are decoded to UTF-8 using the declared charset or chardet, then read
// with goquery (CSS selectors) and htmlquery (XPath).
package preview
