// Package scaffold implements the package initializer behind "pyforge new".
// A run writes the manifest verbatim, materializes an optional LICENSE and a
// README, then triggers the best-effort build backend. File writes always
// complete before any toolchain invocation.
package scaffold
