/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"unicode"

	"github.com/otiai10/copy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Renames file, falls back to copy and remove if rename fails (e.g. across devices)
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copy.Copy(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Removes directories and diacritics, replaces everything but `[A-Za-z0-9._-]` with `-`.
//
// Returns ErrUpload if nothing valid remains
func sanitizeFilename(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	s, _, err := transform.String(stripMarks, base)
	if err != nil {
		s = base
	}
	b := strings.Builder{}
	dash := false
	for _, r := range s {
		valid := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-')
		if !valid || r == '-' {
			if !dash {
				b.WriteRune('-')
			}
			dash = true
			continue
		}
		b.WriteRune(r)
		dash = false
	}
	res := strings.Trim(b.String(), "-.")
	if strings.IndexFunc(res, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
		return "", ErrUpload("filename «%s» can not be sanitized", name)
	}
	return res, nil
}

var errInvalidDataURI = errors.New("invalid data-URI")

// Parses `data:[<mime>][;base64],<data>`
func parseDataURI(uri string) (mt string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errInvalidDataURI
	}
	isBase64 := false
	if m, ok := strings.CutSuffix(meta, ";base64"); ok {
		meta = m
		isBase64 = true
	}
	mt = mediaType(meta)
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", errInvalidDataURI, err)
		}
		return mt, data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", errInvalidDataURI, err)
	}
	return mt, []byte(s), nil
}
