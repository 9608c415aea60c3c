// Package digest defines the Digest type: a SHA-256 hash rendered as 64 lowercase
// hexadecimal characters.
//
// Every identifier in this module is a Digest. A Digest is opaque and immutable;
// it is computed from bytes and never modified.
//
//	d := digest.SumString("line one\nline two")
//	fmt.Println(len(d)) // 64
package digest
