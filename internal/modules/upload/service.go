package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/inkflow/blog-core/internal/config"
)

var (
	errTooLarge        = errors.New("file exceeds the size limit")
	errUnsupportedType = errors.New("unsupported file type")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Result is the stored-file descriptor returned to the console.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type Service struct {
	cfg *config.AppConfig
}

func NewService(cfg *config.AppConfig) *Service {
	return &Service{cfg: cfg}
}

// Store validates and persists an uploaded image. With the local backend the
// file lands under the upload directory and the URL points at /uploads/; the
// inline backend returns the content as a data URL instead.
func (s *Service) Store(fh *multipart.FileHeader) (*Result, error) {
	if fh.Size > s.cfg.UploadLimit() {
		return nil, errTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.UploadLimit()+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.cfg.UploadLimit() {
		return nil, errTooLarge
	}

	mimeType := http.DetectContentType(data)
	ext, ok := imageExtensions[mimeType]
	if !ok {
		return nil, errUnsupportedType
	}

	name := uuid.NewString() + ext
	res := &Result{Filename: name, Size: int64(len(data)), MimeType: mimeType}

	if s.cfg.Upload.Backend == config.UploadBackendInline {
		res.URL = fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		return res, nil
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.cfg.Upload.Dir, name), data, 0o644); err != nil {
		return nil, err
	}
	res.URL = "/uploads/" + name
	return res, nil
}
