// Package codec provides the serialization contracts used by lazycache's
// typed views. A Codec turns values V into the []byte entries a shared
// byte cache stores, and back.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
