//go:build tools
// +build tools

// Package entityd tracks tool dependencies (mockgen) so that `go generate`
// works on a fresh checkout.
package entityd

import (
	_ "go.uber.org/mock/mockgen"
)
