package models

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Hashable is implemented by every entity carrying a content fingerprint.
//
// HashableBytes returns the canonical byte encoding of the entity: every
// content-relevant field in a fixed order, with absent optional fields
// contributing zero bytes and owned children contributing their already
// computed fingerprints. The entity's own fingerprint field and pure display
// fields never contribute.
type Hashable interface {
	HashableBytes() []byte
	Fingerprint() string
	RefreshFingerprint()
}

// Digest returns the hex-encoded 256-bit BLAKE3 digest of the given canonical
// bytes.
func Digest(input []byte) string {
	sum := blake3.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// appendLabeled appends a label followed by the value bytes, but only when the
// value is non-empty. Optional fields are encoded this way so that "absent"
// contributes zero bytes without colliding with a neighbouring field's value.
func appendLabeled(dst []byte, label, value string) []byte {
	if value == "" {
		return dst
	}
	dst = append(dst, label...)
	dst = append(dst, ' ')
	return append(dst, value...)
}

// appendLabeledUint16 appends a label followed by the big-endian 2-byte
// encoding of v. Numeric optionals carry a label like string ones do, so a
// value cannot slide into a neighbouring field's position when siblings are
// absent.
func appendLabeledUint16(dst []byte, label string, v uint16) []byte {
	dst = append(dst, label...)
	dst = append(dst, ' ')
	return binary.BigEndian.AppendUint16(dst, v)
}
