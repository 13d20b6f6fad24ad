package http

import (
	"context"
	"io"
	"net/http"
	"path"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SignedFileStore serves links handed out by storage.FileStorage.GetURL.
type SignedFileStore interface {
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Verify(path, expires, signature string) error
}

type FileHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	store SignedFileStore
}

func NewFileHandler(store SignedFileStore) FileHandler {
	return &fileHandlerImpl{store: store}
}

// Serve streams a stored file when the link signature is valid.
func (h *fileHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	q := r.URL.Query()

	if err := h.store.Verify(key, q.Get("expires"), q.Get("signature")); err != nil {
		response.HandleError(w, err)
		return
	}

	rc, err := h.store.Download(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	contentType := "application/octet-stream"
	if path.Ext(key) == ".pdf" {
		contentType = "application/pdf"
	}
	response.File(w, contentType, path.Base(key), content)
}
