// Package steps provides step definitions for BDD integration tests.
// Run them with: go test -tags integration ./test/integration/...
package steps
