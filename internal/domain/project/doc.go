// Package project holds the ProjectConfig rules shared by the builder API:
// defaults, URL normalization, navigation fragment decoding, display text
// sanitizing and the phone-frame preview policy.
package project
