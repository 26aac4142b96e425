package drt

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DomainDRS separates DRS fingerprints from other hashes.
const DomainDRS = "ccgdrs/drs/v1"

// MarshalCanonical encodes e as canonical JSON: fixed key order, no
// insignificant whitespace, NFC-normalized strings, no HTML escaping.
// Merge nodes are encoded as they are; resolve them first for a
// fingerprint of the logical form.
func MarshalCanonical(e Expr) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeExpr(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fingerprint returns the hex SHA-256 of the canonical encoding of the
// resolved form of e.
func Fingerprint(e Expr) (string, error) {
	data, err := MarshalCanonical(ResolveMerges(e))
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainDRS))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

func writeRefList(buf *bytes.Buffer, rs []Ref) error {
	buf.WriteByte('[')
	for i, r := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, r.String()); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// writeKey writes "key": with a leading comma unless first.
func writeKey(buf *bytes.Buffer, key string, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	buf.WriteByte('"')
	buf.WriteString(key)
	buf.WriteString(`":`)
}

func writeExpr(buf *bytes.Buffer, e Expr) error {
	switch e := e.(type) {
	case *DRS:
		buf.WriteByte('{')
		writeKey(buf, "conds", true)
		buf.WriteByte('[')
		for i, c := range e.Conds {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCondJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		writeKey(buf, "universe", false)
		if err := writeRefList(buf, e.Universe); err != nil {
			return err
		}
		buf.WriteByte('}')
	case *Merge:
		buf.WriteByte('{')
		writeKey(buf, "merge", true)
		if err := writePair(buf, e.Left, e.Right); err != nil {
			return err
		}
		buf.WriteByte('}')
	case *Lambda:
		buf.WriteByte('{')
		writeKey(buf, "args", true)
		if err := writeRefList(buf, e.Refs); err != nil {
			return err
		}
		writeKey(buf, "lambda", false)
		if err := writeString(buf, e.Name); err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
	return nil
}

func writePair(buf *bytes.Buffer, a, b Expr) error {
	buf.WriteByte('[')
	if err := writeExpr(buf, a); err != nil {
		return err
	}
	buf.WriteByte(',')
	if err := writeExpr(buf, b); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

func writeUnary(buf *bytes.Buffer, key string, d Expr) error {
	buf.WriteByte('{')
	writeKey(buf, key, true)
	if err := writeExpr(buf, d); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeCondJSON(buf *bytes.Buffer, c Cond) error {
	switch c := c.(type) {
	case *Rel:
		buf.WriteByte('{')
		writeKey(buf, "args", true)
		if err := writeRefList(buf, c.Args); err != nil {
			return err
		}
		writeKey(buf, "rel", false)
		if err := writeString(buf, c.Name); err != nil {
			return err
		}
		buf.WriteByte('}')
	case *Neg:
		return writeUnary(buf, "neg", c.DRS)
	case *Box:
		return writeUnary(buf, "box", c.DRS)
	case *Diamond:
		return writeUnary(buf, "diamond", c.DRS)
	case *Prop:
		buf.WriteByte('{')
		writeKey(buf, "drs", true)
		if err := writeExpr(buf, c.DRS); err != nil {
			return err
		}
		writeKey(buf, "prop", false)
		if err := writeString(buf, c.Ref.String()); err != nil {
			return err
		}
		buf.WriteByte('}')
	case *Imp:
		buf.WriteByte('{')
		writeKey(buf, "imp", true)
		if err := writePair(buf, c.Antecedent, c.Consequent); err != nil {
			return err
		}
		buf.WriteByte('}')
	case *Or:
		buf.WriteByte('{')
		writeKey(buf, "or", true)
		if err := writePair(buf, c.Left, c.Right); err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported condition %T", c)
	}
	return nil
}
