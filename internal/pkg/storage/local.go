package storage

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// LocalStorage keeps files under a base directory and hands out links of the
// form <baseURL>/<path>?expires=<unix>&signature=<hex>.
type LocalStorage struct {
	basePath   string
	baseURL    string // e.g., "http://localhost:8080/files"
	signingKey []byte
	now        func() time.Time
}

func NewLocalStorage(basePath, baseURL, signingKey string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:   abs,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: macKey(signingKey),
		now:        time.Now,
	}, nil
}

// resolve maps a storage key to a path inside basePath.
func (s *LocalStorage) resolve(path string) (key string, full string, err error) {
	key = filepath.ToSlash(filepath.Clean("/" + path))[1:]
	if key == "" {
		return "", "", ErrInvalidPath
	}
	full = filepath.Join(s.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(full, s.basePath+string(os.PathSeparator)) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return key, full, nil
}

// Upload writes to a temporary file and renames it so readers never see a
// partial document.
func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	key, full, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return key, nil
}

func (s *LocalStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	_, full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, full, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	key, _, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	expires := s.now().Add(expiry).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", s.sign(key, expires))

	return fmt.Sprintf("%s/%s?%s", s.baseURL, key, q.Encode()), nil
}

// Verify checks the expires and signature query values of a link produced by
// GetURL.
func (s *LocalStorage) Verify(path, expires, signature string) error {
	key, _, err := s.resolve(path)
	if err != nil {
		return err
	}

	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || s.now().Unix() > exp {
		return ErrInvalidSignature
	}
	if subtle.ConstantTimeCompare([]byte(signature), []byte(s.sign(key, exp))) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// macKey fits the secret into the 64 byte limit of keyed BLAKE2b.
func macKey(secret string) []byte {
	if len(secret) <= blake2b.Size {
		return []byte(secret)
	}
	sum := blake2b.Sum256([]byte(secret))
	return sum[:]
}

func (s *LocalStorage) sign(key string, expires int64) string {
	mac, err := blake2b.New256(s.signingKey)
	if err != nil {
		// unreachable, macKey bounds the key length
		panic(err)
	}
	mac.Write([]byte(key))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
