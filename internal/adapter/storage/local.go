package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"sesi-membership/pkg/id"
)

// MaxUploadBytes caps a single applicant document.
const MaxUploadBytes = 5 << 20

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads"

var (
	ErrFileTooLarge = errors.New("file size exceeds 5MB limit")
	ErrFileType     = errors.New("file type not allowed; allowed: .pdf .jpg .jpeg .png .doc .docx")
	ErrBadPath      = errors.New("invalid storage path")
)

var allowedExt = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".doc": true, ".docx": true,
}

// ValidateUpload checks the declared name and size of an upload.
func ValidateUpload(name string, size int64) error {
	if !allowedExt[strings.ToLower(filepath.Ext(name))] {
		return ErrFileType
	}
	if size > MaxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Local stores files below a root directory and hands out public paths.
type Local struct{ root string }

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{root: root}, nil
}

func (s *Local) Root() string { return s.root }

func (s *Local) Validate(name string, size int64) error { return ValidateUpload(name, size) }

// SaveUpload validates and stores an applicant document under folder using a
// random file name that keeps the original extension.
func (s *Local) SaveUpload(ctx context.Context, folder, originalName string, size int64, r io.Reader) (string, error) {
	if err := ValidateUpload(originalName, size); err != nil {
		return "", err
	}
	name := id.FileName(originalName)
	return s.write(ctx, folder, name, io.LimitReader(r, MaxUploadBytes+1), MaxUploadBytes)
}

// Save stores generated content, such as certificates, under folder/name.
func (s *Local) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	return s.write(ctx, folder, name, r, -1)
}

// RemoveFolder deletes folder and everything stored under it. A missing
// folder is not an error.
func (s *Local) RemoveFolder(ctx context.Context, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := path.Clean(folder)
	if clean == "." || clean == "/" || strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return ErrBadPath
	}
	return os.RemoveAll(filepath.Join(s.root, filepath.FromSlash(clean)))
}

// Open resolves a public path returned by Save or SaveUpload.
func (s *Local) Open(publicPath string) (io.ReadCloser, error) {
	full, err := s.resolve(publicPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *Local) write(ctx context.Context, folder, name string, r io.Reader, limit int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := path.Join(folder, name)
	if strings.HasPrefix(rel, "..") || strings.ContainsAny(name, `/\`) {
		return "", ErrBadPath
	}
	dir := filepath.Join(s.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	full := filepath.Join(dir, name)
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && limit >= 0 && n > limit {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return PublicPrefix + "/" + rel, nil
}

func (s *Local) resolve(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	if rel == publicPath {
		return "", ErrBadPath
	}
	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return "", ErrBadPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
