// Package encryption provides AES-256-GCM encryption and decryption of
// sensitive string values.
//
// The wire form is a single standard base64 string of
// iv(16) || ciphertext(len(plaintext)) || tag(16). The key must be exactly
// 32 bytes; it is never derived or stretched.
//
// # Usage
//
//	key, err := encryption.ParseKey(os.Getenv("ENCRYPTION_KEY"))
//	enc, err := encryption.NewService(key)
//	envelope, err := enc.Encrypt(plaintext)
//	plaintext, err := enc.Decrypt(envelope)
package encryption
