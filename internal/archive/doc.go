// Package archive packs an add-on directory into a zip file. Two
// implementations share the Archiver interface: Native writes the zip
// in-process with normalized metadata so identical trees give identical
// bytes, and Exec shells out to the zip tool the way the original build
// scripts did.
package archive
