//go:build !enginedebug

package engine

// debugAssert is a no-op in release builds: invalid handles are
// release-mode undefined behavior, checked only when built with the
// enginedebug tag.
func debugAssert(cond bool, msg string) {}
