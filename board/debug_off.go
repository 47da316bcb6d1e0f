//go:build !chessdebug

package board

const debugAssertions = false
