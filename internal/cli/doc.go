// Package cli defines the Cobra command tree for build-addon-index. The
// root command builds the index; validate and version are subcommands.
// Commands only parse flags, resolve settings and wire the internal
// packages together.
package cli
