// Package buildtool wraps the external Python packaging toolchain behind
// the Backend interface. ExecBackend invokes a real interpreter for pip
// upgrades and `python -m build`; DiscoverPackages reports the importable
// packages a build would pick up.
package buildtool
