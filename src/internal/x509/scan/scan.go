// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509scan

import (
	"bytes"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/octet"
)

// Scanner performs position based lookups on DER certificates. The zero
// value accepts no curves; use [New].
type Scanner struct {
	curves map[Curve]bool
}

// New returns a scanner that accepts public keys on the given curves. With
// no arguments P-256, P-384 and P-521 are accepted.
func New(curves ...Curve) *Scanner {
	if len(curves) == 0 {
		curves = []Curve{CurveP256, CurveP384, CurveP521}
	}
	s := &Scanner{curves: make(map[Curve]bool, len(curves))}
	for _, c := range curves {
		if c != CurveNone {
			s.curves[c] = true
		}
	}
	return s
}

// Accepts reports whether keys on curve c are supported.
func (s *Scanner) Accepts(c Curve) bool { return s.curves[c] }

// certificate enters the outer SEQUENCE, which must span the whole buffer.
func certificate(cert []byte) (int, bool) {
	j, n, ok := enter(cert, 0, tagSeq)
	if !ok || j+n != len(cert) {
		return 0, false
	}
	return j, true
}

// ExtractCertSignature classifies the outer signatureAlgorithm of cert and
// copies the signature value into sig. The outer signatureAlgorithm must
// be byte for byte equal to the signature field of the TBSCertificate.
//
// RSA signatures are copied as the raw BIT STRING contents. ECDSA
// signatures are decoded into r || s, each left padded to the longer of
// the two, so the halves can be split with [octet.Buffer.Chop].
//
// A descriptor with [AlgorithmNone] is returned for unrecognized OIDs,
// differing algorithm identifiers, malformed structure, or a signature
// that does not fit in sig.
func (s *Scanner) ExtractCertSignature(cert []byte, sig *octet.Buffer) Descriptor {
	var none Descriptor

	tbs, ok := certificate(cert)
	if !ok {
		return none
	}
	j, ok := skip(cert, tbs, tagSeq)
	if !ok {
		return none
	}

	algStart, algLen, ok := enter(cert, j, tagSeq)
	if !ok {
		return none
	}
	fin := algStart + algLen
	// the signed copy inside TBSCertificate must be identical
	inner, innerEnd, ok := tbsSignatureAlgorithm(cert, tbs)
	if !ok || !bytes.Equal(cert[inner:innerEnd], cert[j:fin]) {
		return none
	}
	oidStart, oidLen, ok := enter(cert, algStart, tagOID)
	if !ok || oidStart+oidLen > fin {
		return none
	}
	alg, ok := lookupSignature(cert[oidStart : oidStart+oidLen])
	if !ok {
		return none
	}

	bs, n, ok := enter(cert, fin, tagBitString)
	if !ok || n < 1 || cert[bs] != 0 {
		return none
	}
	body := cert[bs+1 : bs+n]

	desc := Descriptor{Algorithm: alg.alg, Hash: alg.hash}
	switch alg.alg {
	case AlgorithmRSA:
		if sig.Set(body) != nil {
			return none
		}
		desc.Bits = 8 * len(body)
	case AlgorithmECC:
		if !ecdsaSignature(body, sig) {
			return none
		}
	}
	return desc
}

// tbsSignatureAlgorithm returns the span of the signature AlgorithmIdentifier
// of the TBSCertificate at j.
func tbsSignatureAlgorithm(cert []byte, j int) (int, int, bool) {
	k, _, ok := enter(cert, j, tagSeq)
	if !ok {
		return 0, 0, false
	}
	if k < len(cert) && cert[k] == tagVersion {
		if k, ok = skip(cert, k, tagVersion); !ok {
			return 0, 0, false
		}
	}
	if k, ok = skip(cert, k, tagInt); !ok {
		return 0, 0, false
	}
	end, ok := skip(cert, k, tagSeq)
	return k, end, ok
}

// ecdsaSignature writes r || s from an Ecdsa-Sig-Value SEQUENCE.
func ecdsaSignature(body []byte, sig *octet.Buffer) bool {
	j, n, ok := enter(body, 0, tagSeq)
	if !ok || j+n != len(body) {
		return false
	}
	r, j, ok := integer(body, j)
	if !ok {
		return false
	}
	sv, _, ok := integer(body, j)
	if !ok {
		return false
	}
	width := max(len(r), len(sv))

	sig.Reset()
	if sig.AppendByte(0, width-len(r)) != nil || sig.Append(r) != nil {
		return false
	}
	if sig.AppendByte(0, width-len(sv)) != nil || sig.Append(sv) != nil {
		return false
	}
	return true
}

// ExtractTBSCertificate copies the TBSCertificate SEQUENCE of cert,
// including its own tag and length, into tbs. These are exactly the bytes
// the issuer signed.
func (s *Scanner) ExtractTBSCertificate(cert []byte, tbs *octet.Buffer) bool {
	j, ok := certificate(cert)
	if !ok {
		return false
	}
	end, ok := skip(cert, j, tagSeq)
	if !ok {
		return false
	}
	return tbs.SetSlice(cert, j, end-j) == nil
}

// FindIssuer returns the offset of the issuer Name in tbs, or 0.
func (s *Scanner) FindIssuer(tbs []byte) int {
	j, n, ok := enter(tbs, 0, tagSeq)
	if !ok || j+n != len(tbs) {
		return 0
	}
	// version is absent in v1 certificates
	if j < len(tbs) && tbs[j] == tagVersion {
		if j, ok = skip(tbs, j, tagVersion); !ok {
			return 0
		}
	}
	if j, ok = skip(tbs, j, tagInt); !ok {
		return 0
	}
	if j, ok = skip(tbs, j, tagSeq); !ok {
		return 0
	}
	if _, _, ok = header(tbs, j, tagSeq); !ok {
		return 0
	}
	return j
}

// FindValidity returns the offset of the Validity SEQUENCE in tbs, or 0.
func (s *Scanner) FindValidity(tbs []byte) int {
	return s.next(tbs, s.FindIssuer(tbs))
}

// FindSubject returns the offset of the subject Name in tbs, or 0.
func (s *Scanner) FindSubject(tbs []byte) int {
	return s.next(tbs, s.FindValidity(tbs))
}

// next steps over the SEQUENCE at j and checks that another SEQUENCE
// follows.
func (s *Scanner) next(tbs []byte, j int) int {
	if j == 0 {
		return 0
	}
	j, ok := skip(tbs, j, tagSeq)
	if !ok {
		return 0
	}
	if _, _, ok = header(tbs, j, tagSeq); !ok {
		return 0
	}
	return j
}

// FindEntityAttribute searches the Name SEQUENCE at name for an attribute
// whose type is exactly oid. It returns a reference to the attribute value
// contents, or a zero [Attribute] when absent or when the structure is
// malformed.
func (s *Scanner) FindEntityAttribute(tbs []byte, oid []byte, name int) Attribute {
	var none Attribute
	if name <= 0 {
		return none
	}
	j, n, ok := enter(tbs, name, tagSeq)
	if !ok {
		return none
	}
	end := j + n

	for j < end {
		setStart, setLen, ok := enter(tbs, j, tagSet)
		if !ok {
			return none
		}
		setEnd := setStart + setLen
		if setEnd > end {
			return none
		}
		for k := setStart; k < setEnd; {
			atv, atvLen, ok := enter(tbs, k, tagSeq)
			if !ok || atv+atvLen > setEnd {
				return none
			}
			oidStart, oidLen, ok := enter(tbs, atv, tagOID)
			if !ok {
				return none
			}
			val, valLen, ok := enter(tbs, oidStart+oidLen, tagAny)
			if !ok || val+valLen > atv+atvLen {
				return none
			}
			if bytes.Equal(tbs[oidStart:oidStart+oidLen], oid) {
				return Attribute{OID: oid, Offset: val, Length: valLen}
			}
			k = atv + atvLen
		}
		j = setEnd
	}
	return none
}

// FindStartDate returns the offset of the notBefore UTCTime digits in the
// Validity SEQUENCE at validity, or 0 when absent or not a UTCTime.
func (s *Scanner) FindStartDate(tbs []byte, validity int) int {
	if validity <= 0 {
		return 0
	}
	j, _, ok := enter(tbs, validity, tagSeq)
	if !ok {
		return 0
	}
	return utcTime(tbs, j)
}

// FindExpiryDate returns the offset of the notAfter UTCTime digits in the
// Validity SEQUENCE at validity, or 0 when absent or not a UTCTime.
func (s *Scanner) FindExpiryDate(tbs []byte, validity int) int {
	if validity <= 0 {
		return 0
	}
	j, _, ok := enter(tbs, validity, tagSeq)
	if !ok {
		return 0
	}
	if j, ok = skip(tbs, j, tagUTCTime); !ok {
		return 0
	}
	return utcTime(tbs, j)
}

func utcTime(tbs []byte, j int) int {
	start, n, ok := enter(tbs, j, tagUTCTime)
	if !ok || n < 12 {
		return 0
	}
	return start
}

// ExtractPublicKey reads the SubjectPublicKeyInfo that follows the subject
// Name at subject and copies the key material into key: the RSA modulus
// without its sign byte, or the ECC point coordinates X || Y without the
// uncompressed point prefix.
//
// A descriptor with [AlgorithmNone] is returned for an unknown key
// algorithm, a curve the scanner does not accept, a compressed or
// truncated point, or malformed structure.
func (s *Scanner) ExtractPublicKey(tbs []byte, subject int, key *octet.Buffer) Descriptor {
	var none Descriptor
	if subject <= 0 {
		return none
	}
	j, ok := skip(tbs, subject, tagSeq)
	if !ok {
		return none
	}
	if j, _, ok = enter(tbs, j, tagSeq); !ok {
		return none
	}

	algStart, algLen, ok := enter(tbs, j, tagSeq)
	if !ok {
		return none
	}
	fin := algStart + algLen
	oidStart, oidLen, ok := enter(tbs, algStart, tagOID)
	if !ok || oidStart+oidLen > fin {
		return none
	}
	oid := tbs[oidStart : oidStart+oidLen]

	bs, n, ok := enter(tbs, fin, tagBitString)
	if !ok || n < 2 || tbs[bs] != 0 {
		return none
	}
	body := tbs[bs+1 : bs+n]

	switch {
	case bytes.Equal(oid, oidECPublicKey):
		cs, cl, ok := enter(tbs, oidStart+oidLen, tagOID)
		if !ok || cs+cl > fin {
			return none
		}
		curve := lookupCurve(tbs[cs : cs+cl])
		if !s.Accepts(curve) {
			return none
		}
		if body[0] != 0x04 || len(body) != 1+2*curve.CoordinateSize() {
			return none
		}
		if key.Set(body[1:]) != nil {
			return none
		}
		return Descriptor{Algorithm: AlgorithmECC, Curve: curve, Bits: curve.Bits()}

	case bytes.Equal(oid, oidRSAEncryption):
		k, kl, ok := enter(body, 0, tagSeq)
		if !ok || k+kl != len(body) {
			return none
		}
		modulus, k, ok := integer(body, k)
		if !ok {
			return none
		}
		exp, _, ok := integer(body, k)
		if !ok || len(exp) > 4 {
			return none
		}
		if key.Set(modulus) != nil {
			return none
		}
		var e uint32
		for _, b := range exp {
			e = e<<8 | uint32(b)
		}
		return Descriptor{Algorithm: AlgorithmRSA, Bits: 8 * len(modulus), Exponent: e}
	}
	return none
}
