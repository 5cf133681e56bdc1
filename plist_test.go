package xcodeproj

import (
	"bytes"
	"testing"
)

func TestEscapeNonASCII(t *testing.T) {
	deepEqual(t, string(escapeNonASCII([]byte("plain ascii"))), "plain ascii")
	deepEqual(t, string(escapeNonASCII([]byte("Récréation"))), "R&#233;cr&#233;ation")
	deepEqual(t, string(escapeNonASCII([]byte("日本"))), "&#26085;&#26412;")
	deepEqual(t, string(escapeNonASCII([]byte(""))), "")
}

func TestCodecDetectsFormat(t *testing.T) {
	codec := NewPlistCodec()

	doc, f, err := codec.DecodeDocument([]byte(`{ a = b; }`))
	isnilerr(t, err)
	deepEqual(t, f, FormatOpenStep)
	deepEqual(t, doc["a"], "b")

	data := must(codec.EncodeDocument(map[string]any{"a": "b"}, FormatXML))
	doc, f, err = codec.DecodeDocument(data)
	isnilerr(t, err)
	deepEqual(t, f, FormatXML)
	deepEqual(t, doc["a"], "b")

	data = must(codec.EncodeDocument(map[string]any{"a": "b"}, FormatOpenStep))
	doc, f, err = codec.DecodeDocument(data)
	isnilerr(t, err)
	deepEqual(t, f, FormatOpenStep)
	deepEqual(t, doc["a"], "b")
}

func TestCodecRejectsGarbage(t *testing.T) {
	_, _, err := NewPlistCodec().DecodeDocument([]byte("{ unterminated"))
	isnonnilerr(t, err)

	_, err = NewPlistCodec().EncodeDocument(map[string]any{}, Format(9))
	isnonnilerr(t, err)
}

func TestFormatString(t *testing.T) {
	deepEqual(t, FormatXML.String(), "xml")
	deepEqual(t, FormatOpenStep.String(), "openstep")
	deepEqual(t, Format(9).String(), "Format(9)")
}

func TestDataIsSevenBit(t *testing.T) {
	p := New("", Options{UUIDGenerator: seqIDs("AA")})
	p.NewGroup(nil, "Résumé")

	data := must(p.Data())
	for _, b := range data {
		if b >= 0x80 {
			t.Fatalf("** byte %#x in output, wanted pure 7-bit", b)
		}
	}
	if !bytes.Contains(data, []byte("R&#233;sum&#233;")) {
		t.Errorf("** escaped group name missing from output")
	}

	// The references parse back to the original characters.
	p2 := must(Load(data, Options{}))
	isnonnil(t, childGroupNamed(p2.MainGroup(), "Résumé"))
}
