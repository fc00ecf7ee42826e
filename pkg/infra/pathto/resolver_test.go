package pathto_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/docfront/pkg/infra/pathto"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		opts    []pathto.Option
		path    string
		want    string
		wantErr error
	}{
		{
			name: "Relative document",
			path: "developers/contributing",
			want: "developers/contributing.html",
		},
		{
			name: "Anchor is kept",
			path: "modules/classes#api-reference",
			want: "modules/classes.html#api-reference",
		},
		{
			name: "Absolute base URL",
			opts: []pathto.Option{pathto.WithBaseURL("https://scikit-learn.org/stable/")},
			path: "developers/contributing",
			want: "https://scikit-learn.org/stable/developers/contributing.html",
		},
		{
			name: "Base URL with anchor",
			opts: []pathto.Option{pathto.WithBaseURL("https://scikit-learn.org/stable")},
			path: "whats_new#changelog",
			want: "https://scikit-learn.org/stable/whats_new.html#changelog",
		},
		{
			name: "Custom suffix",
			opts: []pathto.Option{pathto.WithSuffix("/")},
			path: "install",
			want: "install/",
		},
		{
			name: "Known document",
			opts: []pathto.Option{pathto.WithDocuments("install", "developers/contributing")},
			path: "developers/contributing",
			want: "developers/contributing.html",
		},
		{
			name:    "Unknown document",
			opts:    []pathto.Option{pathto.WithDocuments("install")},
			path:    "developers/contributing",
			wantErr: pathto.ErrUnknownDocument,
		},
		{
			name:    "Empty path",
			path:    "",
			wantErr: pathto.ErrInvalidPath,
		},
		{
			name:    "Absolute path",
			path:    "/etc/passwd",
			wantErr: pathto.ErrInvalidPath,
		},
		{
			name:    "Escaping path",
			path:    "../outside",
			wantErr: pathto.ErrInvalidPath,
		},
		{
			name:    "Unclean path",
			path:    "developers/../install",
			wantErr: pathto.ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := pathto.New(tt.opts...)
			gt.NoError(t, err)

			got, err := r.Resolve(tt.path)
			if tt.wantErr != nil {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, tt.wantErr))
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestResolver_InvalidBaseURL(t *testing.T) {
	_, err := pathto.New(pathto.WithBaseURL("stable/docs"))
	gt.Error(t, err)
}

func TestResolver_DocsDir(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.MkdirAll(filepath.Join(dir, "developers"), 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "developers", "contributing.html"), []byte("<html></html>"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "developers", "notes.txt"), []byte("notes"), 0644))

	r, err := pathto.New(pathto.WithDocsDir(dir))
	gt.NoError(t, err)

	got, err := r.Resolve("developers/contributing")
	gt.NoError(t, err)
	gt.Equal(t, got, "developers/contributing.html")

	_, err = r.Resolve("developers/notes")
	gt.True(t, errors.Is(err, pathto.ErrUnknownDocument))

	t.Run("missing directory", func(t *testing.T) {
		_, err := pathto.New(pathto.WithDocsDir(filepath.Join(dir, "missing")))
		gt.Error(t, err)
	})

	t.Run("empty suffix", func(t *testing.T) {
		_, err := pathto.New(pathto.WithDocsDir(dir), pathto.WithSuffix(""))
		gt.Error(t, err)
	})
}
