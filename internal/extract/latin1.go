package extract

// DecodeLatin1 restores raw bytes from a string whose bytes were
// reinterpreted through a single-byte-per-character encoding in transit.
// Runes above 0xFF cannot have come from such an encoding and are dropped
// to their low byte.
func DecodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}
