// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509scan

import (
	"errors"
	"time"
)

// ErrDate indicates an offset that does not point at YYMMDDHHMMSS digits.
var ErrDate = errors.New("x509scan: no UTCTime digits at offset")

// ParseDate decodes the UTCTime digits at offset, as returned by
// [Scanner.FindStartDate] or [Scanner.FindExpiryDate]. Two digit years
// below 50 are in the 2000s.
func ParseDate(buf []byte, offset int) (time.Time, error) {
	if offset <= 0 || offset+12 > len(buf) {
		return time.Time{}, ErrDate
	}
	var f [6]int
	for i := range f {
		hi, lo := buf[offset+2*i], buf[offset+2*i+1]
		if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
			return time.Time{}, ErrDate
		}
		f[i] = int(hi-'0')*10 + int(lo-'0')
	}
	year := 1900 + f[0]
	if f[0] < 50 {
		year = 2000 + f[0]
	}
	if f[1] < 1 || f[1] > 12 || f[2] < 1 || f[2] > 31 || f[3] > 23 || f[4] > 59 || f[5] > 59 {
		return time.Time{}, ErrDate
	}
	return time.Date(year, time.Month(f[1]), f[2], f[3], f[4], f[5], 0, time.UTC), nil
}
