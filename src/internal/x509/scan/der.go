// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509scan

// DER tags the scanner walks over.
const (
	tagInt       = 0x02
	tagBitString = 0x03
	tagNull      = 0x05
	tagOID       = 0x06
	tagUTCTime   = 0x17
	tagSeq       = 0x30
	tagSet       = 0x31
	tagVersion   = 0xa0

	// tagAny matches whatever tag is present.
	tagAny = 0x00
)

// header decodes the tag and length at b[j]. It returns the header size and
// the content length, or ok=false when the tag differs from want (unless
// want is tagAny), the length form is unsupported, or the content does not
// fit in b.
func header(b []byte, j int, want byte) (hdr, n int, ok bool) {
	if j < 0 || j+2 > len(b) {
		return 0, 0, false
	}
	if want != tagAny && b[j] != want {
		return 0, 0, false
	}
	switch l := b[j+1]; {
	case l < 0x80:
		hdr, n = 2, int(l)
	case l == 0x81:
		if j+3 > len(b) {
			return 0, 0, false
		}
		hdr, n = 3, int(b[j+2])
	case l == 0x82:
		if j+4 > len(b) {
			return 0, 0, false
		}
		hdr, n = 4, int(b[j+2])<<8|int(b[j+3])
	default:
		return 0, 0, false
	}
	if n > len(b)-j-hdr {
		return 0, 0, false
	}
	return hdr, n, true
}

// skip returns the offset just past the element at j.
func skip(b []byte, j int, want byte) (int, bool) {
	hdr, n, ok := header(b, j, want)
	if !ok {
		return 0, false
	}
	return j + hdr + n, true
}

// enter returns the offset of the content of the element at j and its length.
func enter(b []byte, j int, want byte) (int, int, bool) {
	hdr, n, ok := header(b, j, want)
	if !ok {
		return 0, 0, false
	}
	return j + hdr, n, true
}

// integer returns the content of the INTEGER at j with a single leading
// sign byte removed, and the offset past it.
func integer(b []byte, j int) (val []byte, next int, ok bool) {
	start, n, ok := enter(b, j, tagInt)
	if !ok || n == 0 {
		return nil, 0, false
	}
	val = b[start : start+n]
	if len(val) > 1 && val[0] == 0 {
		val = val[1:]
	}
	return val, start + n, true
}
