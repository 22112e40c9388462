// Package buildinfo exposes version information of the permanent-report
// binary.
//
// Values come from ldflags when set:
//
//	go build -ldflags "-X github.com/luwae/permanent/internal/infra/buildinfo.Version=v1.0.0"
//
// Otherwise Get falls back to the module and VCS data the Go toolchain
// embeds in the binary.
package buildinfo
