// Package modules contains the self-contained application features.
//
// Each subdirectory is a module implementing the `module.Module` interface.
// Modules are listed in `internal/app/modules.go` and booted by the server
// under `/<name>` at startup.
package modules
