// Package sanitizer normalizes user input before validation, either through
// the string helpers directly or with `sanitize` struct tags via SanitizeStruct.
package sanitizer
