// Package codec provides the binary-to-text encoding used for every secret,
// digest, and ciphertext that crosses a text boundary.
//
// The encoding is standard base64 (RFC 4648 §4, alphabet A-Z a-z 0-9 + /)
// with '=' padding. Decoding accepts unpadded input and is otherwise
// strict: whitespace anywhere (including line breaks), bytes outside the
// alphabet, misplaced padding and non-canonical trailing bits all produce
// an error wrapping ErrInvalidEncoding.
//
//	text := codec.Encode(digest)
//	raw, err := codec.Decode(text)
package codec
