package svd

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Integer decodes SVD integer elements, which may be decimal, hexadecimal
// (0x prefix) or binary (# prefix, with x as don't-care).
type Integer uint64

func (h *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	var v string
	d.DecodeElement(&v, &start)

	var value uint64
	switch {
	case strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X"):
		value, err = strconv.ParseUint(v[2:], 16, 64)
	case strings.HasPrefix(v, "#"):
		// The 'x' represents don't care, treat as zero.
		s := strings.ReplaceAll(strings.TrimPrefix(v, "#"), "x", "0")
		value, err = strconv.ParseUint(s, 2, 64)
	case strings.HasPrefix(v, "0b"):
		value, err = strconv.ParseUint(strings.ReplaceAll(v[2:], "x", "0"), 2, 64)
	default:
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return err
	}
	*h = Integer(value)
	return nil
}
