/*
Package icon is the icon assist client. It generates app icons from a text
subject and edits existing images with a text instruction, using a Gemini
style generateContent REST endpoint:

	POST {endpoint}/models/{model}:generateContent
	x-goog-api-key: {key}

The client fails closed: transport errors, non-2xx statuses, empty
candidates and responses without inline image data all yield ("", false)
and a warning in the log.
*/
package icon
