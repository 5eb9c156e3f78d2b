package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	_ "golang.org/x/image/webp"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the configured size limit")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrObjectNotStaged  = errors.New("object is not staged")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Store persists uploaded vacation images with a staged two-phase protocol:
// Stage writes the object somewhere invisible to clients, Promote makes it
// public after the owning database row has committed, and Discard throws a
// staged object away when the row never made it. Remove deletes a published
// object, used when an update replaces a vacation's image.
type Store interface {
	Stage(ctx context.Context, upload Upload) (string, error)
	Promote(ctx context.Context, name string) error
	Discard(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	URL(name string) string
}

// ObjectName derives a collision-resistant object name, keeping the original
// extension so static file servers infer the right content type.
func ObjectName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.NewString() + ext
}

// ReadImage drains an upload into memory, enforcing the size cap and checking
// that the payload actually decodes as an image (jpeg, png, gif or webp).
func ReadImage(upload Upload, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(upload.Reader, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, ErrUnsupportedImage
	}
	return data, nil
}

// LocalStore keeps images on the local filesystem: staged files live in a
// hidden staging directory and Promote renames them into the public one.
type LocalStore struct {
	stagingDir string
	publicDir  string
	publicPath string
	maxBytes   int64
}

func NewLocalStore(stagingDir, publicDir, publicPath string, maxBytes int64) (*LocalStore, error) {
	for _, dir := range []string{stagingDir, publicDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{
		stagingDir: stagingDir,
		publicDir:  publicDir,
		publicPath: strings.TrimRight(publicPath, "/"),
		maxBytes:   maxBytes,
	}, nil
}

func (s *LocalStore) Stage(ctx context.Context, upload Upload) (string, error) {
	data, err := ReadImage(upload, s.maxBytes)
	if err != nil {
		return "", err
	}
	name := ObjectName(upload.FileName)
	if err := os.WriteFile(filepath.Join(s.stagingDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Promote(ctx context.Context, name string) error {
	src := filepath.Join(s.stagingDir, name)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotStaged
		}
		return err
	}
	return os.Rename(src, filepath.Join(s.publicDir, name))
}

func (s *LocalStore) Discard(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.stagingDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.publicDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(name string) string {
	return path.Join(s.publicPath, name)
}

var _ Store = (*LocalStore)(nil)
