package xcodeproj

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"howett.net/plist"
)

// Format identifies a serialization of the project document.
type Format int

const (
	// FormatXML is the XML property list form. Saving always uses it.
	FormatXML Format = iota
	// FormatOpenStep is the legacy braces-and-semicolons form that Xcode
	// itself writes. Read support only.
	FormatOpenStep
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatOpenStep:
		return "openstep"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Codec converts between the serialized project document and its
// top-level attribute dictionary. Decode detects the serialization form
// on its own; Encode produces the requested form.
type Codec interface {
	DecodeDocument(data []byte) (map[string]any, Format, error)
	EncodeDocument(doc map[string]any, format Format) ([]byte, error)
}

// NewPlistCodec returns the standard property-list codec. It reads both
// the OpenStep and the XML form and writes either on request. Values read
// from an OpenStep document come back as strings, the same way Xcode's
// own frameworks surface them.
func NewPlistCodec() Codec {
	return plistCodec{}
}

type plistCodec struct{}

func (plistCodec) DecodeDocument(data []byte) (map[string]any, Format, error) {
	var doc map[string]any
	pf, err := plist.Unmarshal(data, &doc)
	if err != nil {
		return nil, 0, fmt.Errorf("xcodeproj: cannot parse project document: %w", err)
	}
	f := FormatXML
	if pf == plist.OpenStepFormat || pf == plist.GNUStepFormat {
		f = FormatOpenStep
	}
	return doc, f, nil
}

func (plistCodec) EncodeDocument(doc map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
		if err != nil {
			return nil, fmt.Errorf("xcodeproj: cannot serialize project document: %w", err)
		}
		return data, nil
	case FormatOpenStep:
		data, err := plist.Marshal(doc, plist.OpenStepFormat)
		if err != nil {
			return nil, fmt.Errorf("xcodeproj: cannot serialize project document: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("xcodeproj: unknown document format %v", format)
	}
}

// escapeNonASCII rewrites every character above 0x7F as an XML numeric
// character reference, yielding a pure 7-bit document. Source control
// tools and older parsers choke on raw UTF-8 in project files; Xcode
// accepts either spelling.
func escapeNonASCII(data []byte) []byte {
	i := 0
	for i < len(data) && data[i] < utf8.RuneSelf {
		i++
	}
	if i == len(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + 64)
	buf.Write(data[:i])
	for _, r := range string(data[i:]) {
		if r < utf8.RuneSelf {
			buf.WriteByte(byte(r))
		} else {
			fmt.Fprintf(&buf, "&#%d;", r)
		}
	}
	return buf.Bytes()
}
