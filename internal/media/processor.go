package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"net/http"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxDimension keeps document scans legible while bounding storage.
	DefaultMaxDimension = 2400
	minDocumentSide     = 200
	defaultJPEGQuality  = 3
	defaultPNGLevel     = 4
	defaultWebPQuality  = 85
)

var (
	ErrUnsupportedType = errors.New("media: unsupported document type")
	ErrEmptyDocument   = errors.New("media: empty document")
	ErrTooSmall        = errors.New("media: document image too small to read")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// DocumentProcessor checks guest identity document uploads and shrinks
// oversized images with ffmpeg. PDFs are stored as received.
type DocumentProcessor struct {
	path         string
	maxDimension int
	jpegQuality  int
	pngLevel     int
	webpQuality  int
}

func NewDocumentProcessor(binaryPath string, maxDimension int) *DocumentProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &DocumentProcessor{
		path:         path,
		maxDimension: maxDimension,
		jpegQuality:  defaultJPEGQuality,
		pngLevel:     defaultPNGLevel,
		webpQuality:  defaultWebPQuality,
	}
}

func (p *DocumentProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyDocument
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read document: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	contentType := detectContentType(data, upload.ContentType, upload.FileName)
	ext, ok := extensionFor(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if contentType == "application/pdf" {
		return &Result{Bytes: data, ContentType: contentType, Extension: ext}, nil
	}

	width, height, err := decodeDimensions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if width < minDocumentSide && height < minDocumentSide {
		return nil, ErrTooSmall
	}

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}
	if width <= targetMax && height <= targetMax {
		return &Result{Bytes: data, ContentType: contentType, Extension: ext}, nil
	}

	targetW, targetH := scaleToFit(width, height, targetMax)
	processed, err := p.transcode(ctx, data, contentType, targetW, targetH)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: processed, ContentType: contentType, Extension: ext, Resized: true}, nil
}

func decodeDimensions(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newH := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return ensureMin(maxDim), ensureMin(newH)
	}
	newW := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return ensureMin(newW), ensureMin(maxDim)
}

func ensureMin(value int) int {
	if value < 2 {
		return 2
	}
	return value
}

func (p *DocumentProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	codec, args, err := p.codecArgs(contentType)
	if err != nil {
		return nil, err
	}

	cmdArgs := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", width, height),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, "pipe:1")

	cmd := exec.CommandContext(ctx, p.path, cmdArgs...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}

func (p *DocumentProcessor) codecArgs(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(p.jpegQuality)}, nil
	case "image/png":
		return "png", []string{"-compression_level", strconv.Itoa(p.pngLevel)}, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(p.webpQuality)}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

// detectContentType trusts the file's magic bytes over the client header.
func detectContentType(data []byte, declared, fileName string) string {
	sniffed := http.DetectContentType(data)
	switch sniffed {
	case "image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf":
		return sniffed
	}
	ct := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return strings.ToLower(mt)
	}
	return sniffed
}

func extensionFor(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	case "application/pdf":
		return ".pdf", true
	}
	return "", false
}
