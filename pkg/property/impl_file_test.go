/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voedger/charcoal/pkg/ilog"
)

type mockEffectsProcessor struct {
	mock.Mock
}

func (m *mockEffectsProcessor) Apply(path string, effects []map[string]any) error {
	return m.Called(path, effects).Error(0)
}

type fileEnv struct {
	base string
	tmp  string
	deps Deps
	rec  *ilog.Recorder
}

func newFileEnv(t *testing.T) *fileEnv {
	env := &fileEnv{base: t.TempDir(), tmp: t.TempDir(), rec: ilog.NewRecorder()}
	env.deps = testDeps()
	env.deps.Logger = env.rec
	env.deps.File.BasePath = env.base
	env.deps.Now = func() time.Time { return time.Unix(1700000000, 123456000) }
	return env
}

func (env *fileEnv) property(t *testing.T, typ string, data map[string]any) IProperty {
	p, err := Provide(env.deps).Create(typ)
	require.NoError(t, err)
	require.NoError(t, p.SetIdent("attachment"))
	require.NoError(t, p.SetData(data))
	return p
}

// Writes temporary file as if it was just received
func (env *fileEnv) upload(t *testing.T, name, content string) Upload {
	f, err := os.CreateTemp(env.tmp, "upload-*")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return Upload{Name: name, TmpPath: f.Name(), Size: int64(len(content))}
}

func TestFileProperty(t *testing.T) {
	require := require.New(t)

	t.Run("settings", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, map[string]any{
			"upload_path":        "docs",
			"public_access":      1,
			"accepted_mimetypes": "text/plain, image/*",
			"max_filesize":       "2M",
		}).(*FileProperty)

		require.Equal("docs/", p.UploadPath())
		require.True(p.PublicAccess())
		require.False(p.Overwrite())
		require.Equal([]string{"text/plain", "image/*"}, p.AcceptedMimetypes())
		require.EqualValues(2<<20, p.MaxFilesize())
		require.Equal(filepath.Join(env.base, "docs", "a.txt"), p.FilePath("docs/a.txt"))
		require.Equal("VARCHAR(255)", p.SqlType())

		require.ErrorIs(p.SetAcceptedMimetypes("plain"), ErrInvalidArgumentError)
		require.ErrorIs(p.SetMaxFilesize("many"), ErrInvalidArgumentError)
		require.ErrorIs(p.SetUploadPath(" "), ErrInvalidArgumentError)

		require.NoError(p.SetMaxFilesize(0))
		require.EqualValues(DefaultMaxFilesize, p.MaxFilesize())
		env.deps.File.MaxUploadSize = 1024
		p2 := env.property(t, Type_File, nil).(*FileProperty)
		require.EqualValues(1024, p2.MaxFilesize())
	})

	t.Run("upload is moved into upload path", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, nil).(*FileProperty)

		u := env.upload(t, "Résumé final.txt", "hello world")
		rel, err := p.SaveFileUpload(u)
		require.NoError(err)
		require.Equal("uploads/Resume-final.txt", rel)
		require.NoFileExists(u.TmpPath)
		content, err := os.ReadFile(p.FilePath(rel))
		require.NoError(err)
		require.Equal("hello world", string(content))
		require.Len(env.rec.EntriesOf(ilog.Level_Debug), 1)

		rel, err = p.SaveFileUpload(env.upload(t, "Résumé final.txt", "hello again"))
		require.NoError(err)
		require.Equal("uploads/Resume-final-1.txt", rel, "existing file is not replaced")

		require.NoError(p.SetOverwrite(true))
		rel, err = p.SaveFileUpload(env.upload(t, "Résumé final.txt", "replaced"))
		require.NoError(err)
		require.Equal("uploads/Resume-final.txt", rel)
		content, err = os.ReadFile(p.FilePath(rel))
		require.NoError(err)
		require.Equal("replaced", string(content))
	})

	t.Run("upload failures", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, map[string]any{"accepted_mimetypes": []any{"image/*"}}).(*FileProperty)

		_, err := p.SaveFileUpload(Upload{Name: "a.png", Error: Upload_Partial})
		require.ErrorIs(err, ErrUploadError)
		require.ErrorContains(err, Upload_Partial.Message())

		_, err = p.SaveFileUpload(Upload{Name: "a.png"})
		require.ErrorIs(err, ErrUploadError)

		_, err = p.SaveFileUpload(env.upload(t, "a.png", "not an image"))
		require.ErrorIs(err, ErrUploadError, "detected type is text/plain")

		require.NoError(p.SetAcceptedMimetypes(nil))
		require.NoError(p.SetMaxFilesize(4))
		_, err = p.SaveFileUpload(env.upload(t, "big.txt", "too large"))
		require.ErrorIs(err, ErrUploadError)

		require.NoError(p.SetMaxFilesize(0))
		_, err = p.SaveFileUpload(env.upload(t, "***", "x"))
		require.ErrorIs(err, ErrUploadError)
	})

	t.Run("data-URI", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, nil).(*FileProperty)

		rel, err := p.SaveDataUpload("data:text/plain;base64,aGVsbG8=")
		require.NoError(err)
		require.Equal("uploads/6553f1001e240.txt", rel)
		content, err := os.ReadFile(p.FilePath(rel))
		require.NoError(err)
		require.Equal("hello", string(content))

		rel, err = p.SaveDataUpload("data:,hello%20world")
		require.NoError(err)
		require.Equal("uploads/6553f1001e240-1.txt", rel, "type is detected from content")

		_, err = p.SaveDataUpload("data:text/plain;base64,@@@")
		require.ErrorIs(err, ErrUploadError)
		_, err = p.SaveDataUpload("data:text/plain")
		require.ErrorIs(err, ErrUploadError)
	})

	t.Run("save", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, nil)

		saved, err := p.Save(env.upload(t, "a.txt", "a"))
		require.NoError(err)
		require.Equal("uploads/a.txt", saved)

		saved, err = p.Save("uploads/existing.txt")
		require.NoError(err)
		require.Equal("uploads/existing.txt", saved, "paths are kept as is")

		saved, err = p.Save(nil)
		require.NoError(err)
		require.Nil(saved)
	})

	t.Run("multiple save skips failed items", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, map[string]any{"multiple": true})

		saved, err := p.Save([]any{
			Upload{Name: "broken.txt", Error: Upload_CantWrite},
			env.upload(t, "b.txt", "b"),
			"data:text/plain,c",
		})
		require.NoError(err)
		require.Equal([]any{"uploads/b.txt", "uploads/6553f1001e240.txt"}, saved)
		require.Len(env.rec.EntriesOf(ilog.Level_Warning), 1)
		require.Equal("TEXT", p.SqlType())
	})

	t.Run("unsaved values can not be stored", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, nil)

		_, err := p.StorageVal(Upload{Name: "a.txt", TmpPath: "/tmp/x"})
		require.ErrorIs(err, ErrLogicError)
		_, err = p.StorageVal("data:,x")
		require.ErrorIs(err, ErrLogicError)

		sv, err := p.StorageVal("uploads/a.txt")
		require.NoError(err)
		require.Equal("uploads/a.txt", sv)
		require.Equal("a.txt", p.DisplayVal(Upload{Name: "a.txt"}))
	})

	t.Run("validation", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_File, map[string]any{"accepted_mimetypes": "text/plain", "max_filesize": 8})

		rel, err := p.(*FileProperty).SaveFileUpload(env.upload(t, "ok.txt", "fine"))
		require.NoError(err)
		require.NoError(p.SetVal(rel))
		require.Empty(p.Validate())

		require.NoError(p.SetVal("uploads/missing.txt"))
		require.Equal([]string{Validation_Mimetypes, Validation_Filesizes}, p.Validate())

		require.NoError(p.SetVal("data:text/plain,0123456789"))
		require.Equal([]string{Validation_Filesizes}, p.Validate())

		require.NoError(p.SetVal("data:image/png;base64,AA=="))
		require.Equal([]string{Validation_Mimetypes}, p.Validate())
	})
}

func TestSanitizeFilename(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		name string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"Ça va été.doc", "Ca-va-ete.doc"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\photo (1).JPG`, "photo-1-.JPG"},
		{"--a  b--.txt", "a-b-.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeFilename(tt.name)
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}

	_, err := sanitizeFilename("«»")
	require.ErrorIs(err, ErrUploadError)
}

func TestImageProperty(t *testing.T) {
	require := require.New(t)

	effects := []map[string]any{{"type": "resize", "width": 100}}

	t.Run("defaults", func(t *testing.T) {
		env := newFileEnv(t)
		p := env.property(t, Type_Image, nil).(*ImageProperty)
		require.Contains(p.AcceptedMimetypes(), "image/png")
		require.Equal(ApplyEffects_Save, p.ApplyEffects())
		require.ErrorIs(p.SetApplyEffects("sometimes"), ErrInvalidArgumentError)
		require.ErrorIs(p.SetEffects([]any{"resize"}), ErrInvalidArgumentError)
	})

	t.Run("effects are applied on save", func(t *testing.T) {
		env := newFileEnv(t)
		proc := &mockEffectsProcessor{}
		proc.On("Apply", filepath.Join(env.base, "uploads", "a.png"), effects).Return(nil).Once()
		env.deps.EffectsProcessor = proc
		p := env.property(t, Type_Image, map[string]any{"effects": []any{effects[0]}})

		saved, err := p.Save("uploads/a.png")
		require.NoError(err)
		require.Equal("uploads/a.png", saved)
		proc.AssertExpectations(t)
	})

	t.Run("effects are applied on upload only", func(t *testing.T) {
		env := newFileEnv(t)
		proc := &mockEffectsProcessor{}
		env.deps.EffectsProcessor = proc
		p := env.property(t, Type_Image, map[string]any{
			"effects":       []any{effects[0]},
			"apply_effects": ApplyEffects_Upload,
		})

		_, err := p.Save("uploads/a.png")
		require.NoError(err)
		proc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)

		proc.On("Apply", mock.Anything, effects).Return(ErrRuntime("broken image")).Once()
		// 1x1 transparent GIF
		saved, err := p.Save("data:image/gif;base64,R0lGODlhAQABAAAAACw=")
		require.NoError(err)
		require.Equal("uploads/6553f1001e240.gif", saved)
		proc.AssertExpectations(t)
		require.Len(env.rec.EntriesOf(ilog.Level_Warning), 1, "effects failure is logged")
	})

	t.Run("effects are never applied", func(t *testing.T) {
		env := newFileEnv(t)
		proc := &mockEffectsProcessor{}
		env.deps.EffectsProcessor = proc
		p := env.property(t, Type_Image, map[string]any{"effects": []any{effects[0]}, "apply_effects": ApplyEffects_Never})

		_, err := p.Save("uploads/a.png")
		require.NoError(err)
		proc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})
}
