//go:build chessdebug

package board

// debugAssertions enables Validate after every Apply/Unmake.
const debugAssertions = true
