package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/media"
)

type preparedDocument struct {
	reader      io.Reader
	size        int64
	contentType string
	extension   string
}

func prepareDocumentForUpload(ctx context.Context, processor media.Processor, upload media.Upload, maxBytes int64) (*preparedDocument, error) {
	if upload.Reader == nil || upload.Size == 0 {
		return nil, ErrInvalidDocument
	}
	if maxBytes > 0 && upload.Size > maxBytes {
		return nil, ErrDocumentTooLarge
	}
	if processor == nil {
		ext := ".bin"
		if i := strings.LastIndex(upload.FileName, "."); i >= 0 {
			ext = strings.ToLower(upload.FileName[i:])
		}
		return &preparedDocument{reader: upload.Reader, size: upload.Size, contentType: upload.ContentType, extension: ext}, nil
	}
	result, err := processor.Process(ctx, upload, 0)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrEmptyDocument) || errors.Is(err, media.ErrTooSmall) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return nil, err
	}
	return &preparedDocument{
		reader:      bytes.NewReader(result.Bytes),
		size:        int64(len(result.Bytes)),
		contentType: result.ContentType,
		extension:   result.Extension,
	}, nil
}
