/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/ilog"
)

// File stored in file system. Value is upload path relative to base path
//
// # Implements:
//   - IProperty
type FileProperty struct {
	property
	uploadPath        string
	publicAccess      bool
	overwrite         bool
	acceptedMimetypes []string
	maxFilesize       int64
}

func newFileProperty(deps Deps) IProperty {
	p := &FileProperty{}
	p.initFile(p, Type_File, deps)
	return p
}

func (p *FileProperty) initFile(emb propertyImpl, typ string, deps Deps) {
	p.init(emb, typ, deps)
	p.uploadPath = DefaultUploadPath
}

// Returns upload directory relative to base path, always ends with `/`
func (p *FileProperty) UploadPath() string { return p.uploadPath }

func (p *FileProperty) SetUploadPath(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ErrInvalidArgument("upload path of property «%s» can not be empty", p.ident)
	}
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	p.uploadPath = dir
	return nil
}

func (p *FileProperty) PublicAccess() bool { return p.publicAccess }

func (p *FileProperty) SetPublicAccess(v any) error {
	p.publicAccess = codec.ToBool(v)
	return nil
}

// Returns is existing file replaced by upload with the same name
func (p *FileProperty) Overwrite() bool { return p.overwrite }

func (p *FileProperty) SetOverwrite(v any) error {
	p.overwrite = codec.ToBool(v)
	return nil
}

// Returns accepted MIME types, empty means any type is accepted
func (p *FileProperty) AcceptedMimetypes() []string { return slices.Clone(p.acceptedMimetypes) }

// Sets accepted MIME types from list or comma-separated string. Wildcards like `image/*` are allowed
func (p *FileProperty) SetAcceptedMimetypes(v any) error {
	mm, err := toStringList(v)
	if err != nil {
		return ErrInvalidArgument("accepted mimetypes of property «%s»: %v", p.ident, err)
	}
	for i, m := range mm {
		mm[i] = strings.ToLower(m)
		if !strings.Contains(m, "/") {
			return ErrInvalidArgument("«%s» is not a MIME type", m)
		}
	}
	p.acceptedMimetypes = mm
	return nil
}

// Returns maximum file size in bytes: configured by property, by environment or DefaultMaxFilesize
func (p *FileProperty) MaxFilesize() int64 {
	if p.maxFilesize > 0 {
		return p.maxFilesize
	}
	if p.deps.File.MaxUploadSize > 0 {
		return p.deps.File.MaxUploadSize
	}
	return DefaultMaxFilesize
}

// Sets maximum file size. Accepts bytes or ini-style size (`512K`, `2M`, `1G`). Zero resets to default
func (p *FileProperty) SetMaxFilesize(v any) error {
	n, err := parseSize(v)
	if err != nil || n < 0 {
		return ErrInvalidArgument("max filesize of property «%s»: «%v» is not a size", p.ident, v)
	}
	p.maxFilesize = n
	return nil
}

func parseSize(v any) (int64, error) {
	s, ok := codec.ToString(v)
	if !ok {
		return 0, fmt.Errorf("%T is not a size", v)
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	mul := int64(1)
	switch s[len(s)-1] {
	case 'K':
		mul = 1 << 10
	case 'M':
		mul = 1 << 20
	case 'G':
		mul = 1 << 30
	}
	if mul > 1 {
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n * mul, nil
}

// Returns absolute file path of value
func (p *FileProperty) FilePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.deps.File.BasePath, filepath.FromSlash(rel))
}

// Uploads and data-URIs are kept until saved, paths are kept as is
func (p *FileProperty) ParseOne(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case Upload:
		return val, nil
	case *Upload:
		if val == nil {
			return nil, nil
		}
		return *val, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		return s, nil
	}
	return nil, ErrInvalidArgument("%s property «%s» value must be a path or an upload, got %T", p.typ, p.ident, v)
}

// Transfers uploads and data-URIs into upload path, returns resulting path(s).
//
// For multiple property failed items are logged and skipped, already transferred files are kept
func (p *FileProperty) Save(v any) (any, error) {
	if codec.IsBlank(v) {
		return nil, nil
	}
	if p.l10n {
		if m, ok := v.(map[string]any); ok {
			res := make(map[string]any, len(m))
			for l, lv := range m {
				sv, err := p.saveLocalized(lv)
				if err != nil {
					return nil, fmt.Errorf("locale «%s»: %w", l, err)
				}
				res[l] = sv
			}
			return res, nil
		}
	}
	return p.saveLocalized(v)
}

func (p *FileProperty) saveLocalized(v any) (any, error) {
	if codec.IsBlank(v) {
		return nil, nil
	}
	if !p.multiple {
		return p.saveOne(v)
	}
	res := []any{}
	for _, item := range p.uploadItems(v) {
		path, err := p.saveOne(item)
		if err != nil {
			p.deps.Logger.Warning("file skipped", ilog.Ctx{"ident": p.ident, "error": err.Error()})
			continue
		}
		if path != "" {
			res = append(res, path)
		}
	}
	return res, nil
}

func (p *FileProperty) uploadItems(v any) []any {
	switch val := v.(type) {
	case string:
		// data-URIs contain separator
		if strings.HasPrefix(val, "data:") {
			return []any{val}
		}
		return codec.ParseMultiple(val, p.MultipleSeparator())
	case []Upload:
		res := make([]any, len(val))
		for i := range val {
			res[i] = val[i]
		}
		return res
	}
	return listItems(v)
}

func (p *FileProperty) saveOne(v any) (string, error) {
	switch val := v.(type) {
	case Upload:
		return p.SaveFileUpload(val)
	case *Upload:
		return p.SaveFileUpload(*val)
	case string:
		if strings.HasPrefix(val, "data:") {
			return p.SaveDataUpload(val)
		}
		return val, nil
	}
	return "", ErrInvalidArgument("%s property «%s» can not save %T", p.typ, p.ident, v)
}

// Moves received upload into upload path. Returns path relative to base path
func (p *FileProperty) SaveFileUpload(u Upload) (string, error) {
	if u.Error != Upload_Ok {
		return "", ErrUpload("«%s»: %s", u.Name, u.Error.Message())
	}
	if u.TmpPath == "" {
		return "", ErrUpload("«%s»: %s", u.Name, Upload_NoFile.Message())
	}
	info, err := os.Stat(u.TmpPath)
	if err != nil {
		return "", ErrUpload("«%s»: %v", u.Name, err)
	}
	if info.Size() > p.MaxFilesize() {
		return "", ErrUpload("«%s»: size %d exceeds maximum %d", u.Name, info.Size(), p.MaxFilesize())
	}
	mt, err := detectMimetype(u.TmpPath)
	if err != nil {
		return "", ErrUpload("«%s»: %v", u.Name, err)
	}
	if !p.isAccepted(mt) {
		return "", ErrUpload("«%s»: MIME type %s is not accepted", u.Name, mt)
	}
	name, err := sanitizeFilename(u.Name)
	if err != nil {
		return "", err
	}
	target, err := p.uploadTarget(name)
	if err != nil {
		return "", err
	}
	if err := moveFile(u.TmpPath, p.FilePath(target)); err != nil {
		return "", ErrUpload("«%s»: %v", u.Name, err)
	}
	p.deps.Logger.Debug("file uploaded", ilog.Ctx{"ident": p.ident, "path": target})
	return target, nil
}

// Decodes data-URI (`data:<mime>;base64,<data>`) into upload path. Returns path relative to base path
func (p *FileProperty) SaveDataUpload(uri string) (string, error) {
	mt, data, err := parseDataURI(uri)
	if err != nil {
		return "", ErrUpload("data-URI: %v", err)
	}
	if int64(len(data)) > p.MaxFilesize() {
		return "", ErrUpload("data-URI: size %d exceeds maximum %d", len(data), p.MaxFilesize())
	}
	if mt == "" {
		mt = mediaType(http.DetectContentType(data))
	}
	if !p.isAccepted(mt) {
		return "", ErrUpload("data-URI: MIME type %s is not accepted", mt)
	}
	target, err := p.uploadTarget(uniqid(p.deps.Now()) + mimeExtension(mt))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p.FilePath(target), data, 0o644); err != nil {
		return "", ErrUpload("data-URI: %v", err)
	}
	p.deps.Logger.Debug("data uploaded", ilog.Ctx{"ident": p.ident, "path": target})
	return target, nil
}

func (p *FileProperty) isAccepted(mt string) bool {
	if len(p.acceptedMimetypes) == 0 {
		return true
	}
	mt = strings.ToLower(mt)
	for _, a := range p.acceptedMimetypes {
		if a == mt {
			return true
		}
		if prefix, ok := strings.CutSuffix(a, "/*"); ok && strings.HasPrefix(mt, prefix+"/") {
			return true
		}
	}
	return false
}

// Returns free relative path for file name in upload path.
// If overwrite is off then `-1`, `-2`… suffixes are added to avoid collisions
func (p *FileProperty) uploadTarget(name string) (string, error) {
	if err := os.MkdirAll(p.FilePath(p.uploadPath), 0o755); err != nil {
		return "", ErrUpload("upload path «%s»: %v", p.uploadPath, err)
	}
	target := path.Join(p.uploadPath, name)
	if p.overwrite {
		return target, nil
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; fileExists(p.FilePath(target)); i++ {
		target = path.Join(p.uploadPath, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
	return target, nil
}

func (p *FileProperty) displayOne(v any, o *valOptions) string {
	if u, ok := v.(Upload); ok {
		return u.Name
	}
	return p.property.displayOne(v, o)
}

func (p *FileProperty) inputOne(v any, o *valOptions) string {
	return p.displayOne(v, o)
}

func (p *FileProperty) storageOne(v any) (any, error) {
	switch val := v.(type) {
	case Upload:
		return nil, ErrLogic("%s property «%s»: upload «%s» is not saved", p.typ, p.ident, val.Name)
	case string:
		if strings.HasPrefix(val, "data:") {
			return nil, ErrLogic("%s property «%s»: data-URI is not saved", p.typ, p.ident)
		}
	}
	return p.property.storageOne(v)
}

func (p *FileProperty) validators() []validator {
	return append(p.property.validators(),
		validator{Validation_Mimetypes, p.ValidateMimetypes},
		validator{Validation_Filesizes, p.ValidateFilesizes},
	)
}

// Returns local file of value item, empty if item is not a local file
func (p *FileProperty) localFile(item any) string {
	switch val := item.(type) {
	case Upload:
		return val.TmpPath
	case string:
		if strings.HasPrefix(val, "data:") {
			return ""
		}
		return p.FilePath(val)
	}
	return ""
}

// Returns false if any file has not accepted MIME type or does not exist
func (p *FileProperty) ValidateMimetypes() bool {
	if len(p.acceptedMimetypes) == 0 {
		return true
	}
	for _, item := range p.valItems() {
		if s, ok := item.(string); ok && strings.HasPrefix(s, "data:") {
			mt, _, err := parseDataURI(s)
			if err != nil || !p.isAccepted(mt) {
				return false
			}
			continue
		}
		mt, err := detectMimetype(p.localFile(item))
		if err != nil || !p.isAccepted(mt) {
			return false
		}
	}
	return true
}

// Returns false if any file exceeds maximum size or does not exist
func (p *FileProperty) ValidateFilesizes() bool {
	maxSize := p.MaxFilesize()
	for _, item := range p.valItems() {
		if s, ok := item.(string); ok && strings.HasPrefix(s, "data:") {
			_, data, err := parseDataURI(s)
			if err != nil || int64(len(data)) > maxSize {
				return false
			}
			continue
		}
		info, err := os.Stat(p.localFile(item))
		if err != nil || info.Size() > maxSize {
			return false
		}
	}
	return true
}

func (p *FileProperty) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	return "VARCHAR(255)"
}

func (p *FileProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "uploadpath":
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("upload path must be a string, got %T", v)
		}
		return true, p.SetUploadPath(s)
	case "publicaccess":
		return true, p.SetPublicAccess(v)
	case "overwrite":
		return true, p.SetOverwrite(v)
	case "acceptedmimetypes":
		return true, p.SetAcceptedMimetypes(v)
	case "maxfilesize":
		return true, p.SetMaxFilesize(v)
	}
	return p.property.setDataKey(key, v)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, os.ErrNotExist)
}

func detectMimetype(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return mediaType(http.DetectContentType(buf[:n])), nil
}

// Strips parameters: `text/plain; charset=utf-8` gives `text/plain`
func mediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

func mimeExtension(mt string) string {
	switch mt {
	case "image/jpeg":
		return ".jpg"
	case "image/svg+xml":
		return ".svg"
	case "text/plain":
		return ".txt"
	}
	if ee, err := mime.ExtensionsByType(mt); err == nil && len(ee) > 0 {
		return ee[0]
	}
	return ""
}
