package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gamelog-gateway/internal/shared/storage/object"
)

// Upload is one inbound file plus its text fields.
type Upload struct {
	OriginalName string
	Size         int64
	Body         io.Reader
	Values       map[string]string
}

// Service names, stores and describes uploads. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	Store object.ObjectStore
	Namer *Namer
	Now   func() time.Time

	// MaxFileBytes caps the file part; zero means no cap.
	MaxFileBytes int64
}

// NewService constructs a Service with the default clock.
func NewService(store object.ObjectStore, namer *Namer) *Service {
	return &Service{Store: store, Namer: namer, Now: time.Now}
}

// Save persists the upload under a generated name and returns its metadata,
// recording the given optional fields.
func (s *Service) Save(ctx context.Context, up Upload, fields []Field) (Metadata, error) {
	if up.Body == nil || up.Size == 0 {
		return Metadata{}, ErrMissingFile
	}
	if s.MaxFileBytes > 0 && up.Size > s.MaxFileBytes {
		return Metadata{}, ErrFileTooLarge
	}

	name, err := s.Namer.Generate(up.OriginalName)
	if err != nil {
		if errors.Is(err, ErrMissingFile) {
			return Metadata{}, err
		}
		return Metadata{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	size, err := s.Store.Save(ctx, name, up.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	meta := Metadata{
		Filename:     name,
		OriginalName: up.OriginalName,
		Size:         size,
		UploadTime:   now().UTC().Format(isoMillis),
	}
	meta.applyFields(up.Values, fields)
	return meta, nil
}
