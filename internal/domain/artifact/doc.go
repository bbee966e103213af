// Package artifact generates the placeholder apk and ipa downloads of a
// completed build: a text header, an indented JSON manifest of the project
// and filler bytes padding the file to its target size.
package artifact
