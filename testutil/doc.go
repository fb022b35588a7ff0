// Package testutil provides helpers for tests that spawn git and ssh:
// throwaway repositories, generated keys, fake executables and contexts.
package testutil
