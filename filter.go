// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

// decodeStream returns the fully decoded bytes of strm, applying
// FlateDecode and, if present, PNG-predictor reversal. Filters this engine
// never needs to understand (DCTDecode, CCITTFaxDecode, etc.) are left
// encoded; callers that only care whether a stream parses as a dictionary
// of small integers never hit them in practice, since xref streams and
// ObjStm's are always Flate.
func (d *doc) decodeStream(xr *xrefMap, strm stream) ([]byte, error) {
	raw, err := d.streamBytes(xr, strm)
	if err != nil {
		return nil, err
	}

	filters := filterNames(strm.hdr[name("Filter")])
	if len(filters) == 0 {
		return raw, nil
	}

	parms := decodeParms(strm.hdr[name("DecodeParms")], len(filters))

	data := raw
	for i, f := range filters {
		switch f {
		case "FlateDecode", "Fl":
			out, err := inflate(data, 0)
			if err != nil {
				return nil, err
			}
			data = out
			if p := parms[i]; p != nil {
				data, err = applyPredictor(data, p)
				if err != nil {
					return nil, err
				}
			}
		default:
			// Leave unrecognized filters encoded; the caller decides
			// whether that's usable.
		}
	}
	return data, nil
}

func filterNames(v object) []name {
	switch x := v.(type) {
	case name:
		return []name{x}
	case array:
		var out []name
		for _, e := range x {
			if n, ok := e.(name); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}

func decodeParms(v object, n int) []dict {
	out := make([]dict, n)
	switch x := v.(type) {
	case dict:
		if n > 0 {
			out[0] = x
		}
	case array:
		for i, e := range x {
			if i >= n {
				break
			}
			if dd, ok := e.(dict); ok {
				out[i] = dd
			}
		}
	}
	return out
}

func applyPredictor(data []byte, parms dict) ([]byte, error) {
	predictor := intOr(parms[name("Predictor")], 1)
	if predictor <= 1 {
		return data, nil
	}
	if predictor == 2 {
		// TIFF predictor: not used by xref streams or ObjStm's in the wild.
		return data, nil
	}
	columns := intOr(parms[name("Columns")], 1)
	colors := intOr(parms[name("Colors")], 1)
	bpc := intOr(parms[name("BitsPerComponent")], 8)
	return reversePNGPredictor(data, columns, colors, bpc)
}

func intOr(v object, def int) int {
	if n, ok := v.(int64); ok {
		return int(n)
	}
	return def
}
