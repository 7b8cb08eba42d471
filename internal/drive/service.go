// Package drive browses the scanned-voucher folder and archives
// generated voucher PDFs.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// File is one entry of the voucher folder as shown in the browser.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	Kind         string `json:"kind"`
	Size         int64  `json:"size"`
	SizeLabel    string `json:"sizeLabel"`
	ModifiedTime string `json:"modifiedTime"`
	WebViewLink  string `json:"webViewLink"`
}

// Service lists and uploads files in a single Drive folder.
type Service struct {
	drive    *driveapi.Service
	folderID string
	logger   *zap.Logger
}

// NewService builds a Drive client against the configured voucher folder.
func NewService(ctx context.Context, credentialsPath, folderID string, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithScopes(driveapi.DriveScope)}
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	svc, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &Service{drive: svc, folderID: folderID, logger: logger}, nil
}

// ListFolder returns the folder contents, newest first.
func (s *Service) ListFolder(ctx context.Context) ([]File, error) {
	if s.folderID == "" {
		return nil, fmt.Errorf("drive folder id is not configured")
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false", s.folderID)
	call := s.drive.Files.List().
		Q(query).
		OrderBy("modifiedTime desc").
		PageSize(200).
		Fields("files(id, name, mimeType, size, modifiedTime, webViewLink)").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list drive folder %s: %w", s.folderID, err)
	}

	files := make([]File, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			Kind:         FileKind(f.MimeType),
			Size:         f.Size,
			SizeLabel:    FormatFileSize(f.Size),
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}

	s.logger.Debug("drive folder listed", zap.Int("files", len(files)))
	return files, nil
}

// UploadPDF stores a generated voucher PDF in the folder and returns its
// view link.
func (s *Service) UploadPDF(ctx context.Context, name string, data []byte) (string, error) {
	if s.folderID == "" {
		return "", fmt.Errorf("drive folder id is not configured")
	}

	meta := &driveapi.File{
		Name:     name,
		MimeType: "application/pdf",
		Parents:  []string{s.folderID},
	}
	created, err := s.drive.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	s.logger.Info("voucher uploaded", zap.String("file", name), zap.String("id", created.Id))
	return created.WebViewLink, nil
}

// FormatFileSize renders a byte count for display ("1.5 MB").
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*10) / 10
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + units[i]
}

// FileKind buckets a mime type into the icon classes the UI knows.
func FileKind(mimeType string) string {
	t := strings.ToLower(mimeType)
	switch {
	case t == "":
		return "file"
	case strings.Contains(t, "pdf"):
		return "pdf"
	case strings.Contains(t, "image"):
		return "image"
	case strings.Contains(t, "sheet"), strings.Contains(t, "excel"), strings.Contains(t, "spreadsheet"):
		return "sheet"
	case strings.Contains(t, "document"), strings.Contains(t, "word"):
		return "doc"
	case strings.Contains(t, "folder"):
		return "folder"
	default:
		return "file"
	}
}
