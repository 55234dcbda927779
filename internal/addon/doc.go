// Package addon parses and validates SuperTux add-on descriptors (.nfo
// files) and defines the Record that the index builder emits for every
// add-on it packages. It also holds the error kinds shared by the build
// pipeline so callers can classify per-add-on failures with errors.Is.
package addon
