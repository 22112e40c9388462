// Package fingerprint identifies a set of index files by content.
//
// A fingerprint is the hex-encoded 128-bit murmur3 digest over the file
// names and contents, in the order they were added. Two runs over the same
// index directory produce the same fingerprint, which lets the report
// history find earlier results for identical input.
//
// Fingerprints are for identity, not integrity: murmur3 is not
// collision-resistant against a deliberate adversary.
package fingerprint
