package service

import (
	"context"
	"io"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/media"
)

type stubImageProcessor struct {
	output      []byte
	contentType string
	extension   string
	err         error

	calls    int
	last     media.Upload
	lastBody []byte
}

func (s *stubImageProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	s.calls++
	s.last = upload
	if upload.Reader != nil {
		s.lastBody, _ = io.ReadAll(upload.Reader)
	}
	if s.err != nil {
		return nil, s.err
	}
	ct := s.contentType
	if ct == "" {
		ct = upload.ContentType
	}
	ext := s.extension
	if ext == "" {
		ext = ".jpg"
	}
	return &media.Result{
		Bytes:       append([]byte(nil), s.output...),
		ContentType: ct,
		Extension:   ext,
		Resized:     true,
	}, nil
}
