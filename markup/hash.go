package markup

// Hash returns the case-insensitive rolling hash of s.
//
//	h = (h*33) ^ upper(c)
//
// Only ASCII letters are case-folded; tag vocabularies are ASCII.
func Hash(s string) uint32 {
	var h uint32
	for _, r := range s {
		h = HashRune(h, r)
	}
	return h
}

// HashRune extends h by one rune.
func HashRune(h uint32, r rune) uint32 {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return ((h << 5) + h) ^ uint32(r)
}
