package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessPassesThroughSmallImages(t *testing.T) {
	p := NewDocumentProcessor("", 0)
	data := pngBytes(t, 800, 500)

	res, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(data), Size: int64(len(data)), ContentType: "image/jpeg"}, 0)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Resized {
		t.Fatalf("small image should not be resized")
	}
	if res.ContentType != "image/png" || res.Extension != ".png" {
		t.Fatalf("expected sniffed png, got %s %s", res.ContentType, res.Extension)
	}
	if !bytes.Equal(res.Bytes, data) {
		t.Fatalf("expected original bytes")
	}
}

func TestProcessAcceptsPDF(t *testing.T) {
	p := NewDocumentProcessor("", 0)
	data := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

	res, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(data), FileName: "passport.pdf"}, 0)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.ContentType != "application/pdf" || res.Extension != ".pdf" {
		t.Fatalf("unexpected result %s %s", res.ContentType, res.Extension)
	}
}

func TestProcessRejectsInvalidDocuments(t *testing.T) {
	p := NewDocumentProcessor("", 0)

	if _, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(nil)}, 0); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	text := []byte("just some text pretending to be a scan")
	if _, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(text), ContentType: "text/plain"}, 0); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	tiny := pngBytes(t, 40, 40)
	if _, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(tiny)}, 0); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}

func TestScaleToFit(t *testing.T) {
	w, h := scaleToFit(4000, 2000, 2400)
	if w != 2400 || h != 1200 {
		t.Fatalf("landscape: got %dx%d", w, h)
	}
	w, h = scaleToFit(1000, 3000, 2400)
	if w != 800 || h != 2400 {
		t.Fatalf("portrait: got %dx%d", w, h)
	}
}
