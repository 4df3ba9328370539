package markup

// MaxTagLength bounds the characters scanned between '<' and '>'.
const MaxTagLength = 128

// Tag is a scanned tag body.
type Tag struct {
	Closing  bool
	Name     string
	NameHash uint32

	Value     string
	ValueHash uint32
	HasValue  bool

	Attrs []Attr
}

// Attr is a tag attribute.
type Attr struct {
	Name     string
	NameHash uint32
	Value    string
}

// Attr returns the value of the attribute with the given name hash.
func (t *Tag) Attr(hash uint32) (string, bool) {
	for _, a := range t.Attrs {
		if a.NameHash == hash {
			return a.Value, true
		}
	}
	return "", false
}

// ParseTag scans the tag starting at text[start], which must be '<'.
// It returns the tag and the index of the closing '>'. ok is false when
// the characters do not form a syntactically valid tag.
func ParseTag(text []rune, start int) (tag Tag, end int, ok bool) {
	if start >= len(text) || text[start] != '<' {
		return Tag{}, start, false
	}
	limit := min(len(text), start+MaxTagLength+2)
	i := start + 1
	if i < limit && text[i] == '/' {
		tag.Closing = true
		i++
	}

	// Name.
	nameStart := i
	if i < limit && text[i] == '#' && !tag.Closing {
		for i < limit && text[i] != '>' && text[i] != '<' {
			tag.NameHash = HashRune(tag.NameHash, text[i])
			i++
		}
		if i >= limit || text[i] != '>' {
			return Tag{}, start, false
		}
		tag.Name = string(text[nameStart:i])
		tag.Value, tag.HasValue = tag.Name, true
		return tag, i, true
	}
	for i < limit && !isTagDelimiter(text[i]) {
		tag.NameHash = HashRune(tag.NameHash, text[i])
		i++
	}
	if i == nameStart || i >= limit || text[i] == '<' {
		return Tag{}, start, false
	}
	tag.Name = string(text[nameStart:i])

	if text[i] == '=' {
		v, h, next, vok := scanValue(text, i+1, limit)
		if !vok {
			return Tag{}, start, false
		}
		tag.Value, tag.ValueHash, tag.HasValue = v, h, true
		i = next
	}

	// Attributes.
	for i < limit {
		switch text[i] {
		case '>':
			return tag, i, true
		case '<':
			return Tag{}, start, false
		case ' ', '\t':
			i++
			continue
		}
		var a Attr
		attrStart := i
		for i < limit && !isTagDelimiter(text[i]) {
			a.NameHash = HashRune(a.NameHash, text[i])
			i++
		}
		if i >= limit || text[i] == '<' {
			return Tag{}, start, false
		}
		a.Name = string(text[attrStart:i])
		if text[i] == '=' {
			v, _, next, vok := scanValue(text, i+1, limit)
			if !vok {
				return Tag{}, start, false
			}
			a.Value = v
			i = next
		}
		tag.Attrs = append(tag.Attrs, a)
	}
	return Tag{}, start, false
}

// scanValue reads a quoted or bare value starting at i.
func scanValue(text []rune, i, limit int) (value string, hash uint32, next int, ok bool) {
	if i >= limit {
		return "", 0, i, false
	}
	if q := text[i]; q == '"' || q == '\'' {
		j := i + 1
		for j < limit && text[j] != q {
			hash = HashRune(hash, text[j])
			j++
		}
		if j >= limit {
			return "", 0, i, false
		}
		return string(text[i+1 : j]), hash, j + 1, true
	}
	j := i
	for j < limit && text[j] != ' ' && text[j] != '>' && text[j] != '<' {
		hash = HashRune(hash, text[j])
		j++
	}
	if j == i {
		return "", 0, i, false
	}
	return string(text[i:j]), hash, j, true
}

func isTagDelimiter(r rune) bool {
	return r == '=' || r == ' ' || r == '\t' || r == '>' || r == '<'
}
