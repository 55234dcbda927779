// Package index builds the add-on index document. It discovers add-on
// directories under a source root, turns each into an addon.Record by
// parsing its descriptor, archiving it and checksumming the archive, and
// streams every record into the index as soon as it is complete. A failure
// in one add-on is logged and skipped; only failures outside the per-add-on
// loop abort a build.
package index
