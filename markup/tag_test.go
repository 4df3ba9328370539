package markup

import "testing"

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		ok      bool
		end     int
		tagName string
		value   string
		closing bool
		attrs   int
	}{
		{"simple", "<b>x", true, 2, "b", "", false, 0},
		{"closing", "</b>", true, 3, "b", "", true, 0},
		{"value", "<size=20>", true, 8, "size", "20", false, 0},
		{"quoted", `<font="Go Mono">`, true, 15, "font", "Go Mono", false, 0},
		{"attrs", `<sprite name="smile" tint=1>`, true, 27, "sprite", "", false, 2},
		{"value and attr", `<font=Mono material="Glow">`, true, 26, "font", "Mono", false, 1},
		{"hex shorthand", "<#FF0000>", true, 8, "#FF0000", "#FF0000", false, 0},
		{"unterminated", "<b", false, 0, "", "", false, 0},
		{"empty", "<>", false, 0, "", "", false, 0},
		{"nested open", "<b<i>", false, 0, "", "", false, 0},
		{"leading space", "< b>", false, 0, "", "", false, 0},
		{"unterminated quote", `<font="Mono>`, false, 0, "", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, end, ok := ParseTag([]rune(tt.in), 0)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if end != tt.end {
				t.Errorf("end = %d, want %d", end, tt.end)
			}
			if tag.Name != tt.tagName {
				t.Errorf("Name = %q, want %q", tag.Name, tt.tagName)
			}
			if tag.Value != tt.value {
				t.Errorf("Value = %q, want %q", tag.Value, tt.value)
			}
			if tag.Closing != tt.closing {
				t.Errorf("Closing = %v, want %v", tag.Closing, tt.closing)
			}
			if len(tag.Attrs) != tt.attrs {
				t.Errorf("len(Attrs) = %d, want %d", len(tag.Attrs), tt.attrs)
			}
			if tag.NameHash != Hash(tag.Name) {
				t.Errorf("NameHash = %d, want %d", tag.NameHash, Hash(tag.Name))
			}
		})
	}
}

func TestParseTagAttr(t *testing.T) {
	tag, _, ok := ParseTag([]rune(`<sprite name="smile" TINT=1>`), 0)
	if !ok {
		t.Fatal("ParseTag failed")
	}
	if v, ok := tag.Attr(attrName); !ok || v != "smile" {
		t.Errorf("Attr(name) = %q, %v", v, ok)
	}
	if v, ok := tag.Attr(attrTint); !ok || v != "1" {
		t.Errorf("Attr(tint) = %q, %v", v, ok)
	}
	if _, ok := tag.Attr(attrColor); ok {
		t.Error("Attr(color) found on tag without color")
	}
}

func TestParseTagLengthLimit(t *testing.T) {
	long := make([]rune, 0, MaxTagLength+10)
	long = append(long, '<', 'b')
	for len(long) < MaxTagLength+5 {
		long = append(long, 'x')
	}
	long = append(long, '>')
	if _, _, ok := ParseTag(long, 0); ok {
		t.Error("ParseTag accepted a tag longer than MaxTagLength")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in       string
		ok       bool
		number   float64
		unit     Unit
		relative bool
	}{
		{"12", true, 12, Pixels, false},
		{"12px", true, 12, Pixels, false},
		{"1.5em", true, 1.5, FontUnits, false},
		{"50%", true, 50, Percentage, false},
		{"+2", true, 2, Pixels, true},
		{"-0.5em", true, -0.5, FontUnits, true},
		{"", false, 0, Pixels, false},
		{"em", false, 0, Pixels, false},
		{"abc", false, 0, Pixels, false},
	}
	for _, tt := range tests {
		v, ok := ParseValue(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseValue(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if v.Number != tt.number || v.Unit != tt.unit || v.Relative != tt.relative {
			t.Errorf("ParseValue(%q) = %+v, want {%v %v %v}", tt.in, v, tt.number, tt.unit, tt.relative)
		}
	}
}

func TestValuePixels(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"2em", 40},
		{"25%", 50},
	}
	for _, tt := range tests {
		v, _ := ParseValue(tt.in)
		if got := v.Pixels(20, 200); got != tt.want {
			t.Errorf("%q.Pixels(20, 200) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
