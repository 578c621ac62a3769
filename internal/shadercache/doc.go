// Package shadercache memoizes WGSL to SPIR-V compilation.
//
// Entries are keyed by the xxhash64 of the WGSL source, so identical
// programs compiled by different pipelines share one SPIR-V module:
//
//	words, err := shadercache.Default().Compile(src)
//
// The cache keeps at most Capacity entries and evicts the least recently
// used one when full. It is safe for concurrent use and must not be copied
// after creation.
package shadercache
