package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/models"
)

type storageStub struct {
	names []string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.names = append(s.names, name)
	return "https://cdn.example.com/" + name, nil
}

type memoryUploadRepo struct {
	records []models.UploadRecord
}

func (m *memoryUploadRepo) Create(_ context.Context, record *models.UploadRecord) error {
	record.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryUploadRepo) GetByChecksum(_ context.Context, checksum string) (*models.UploadRecord, error) {
	for _, record := range m.records {
		if record.Checksum == checksum {
			return &record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUploadRepo) List(_ context.Context, _ int) ([]models.UploadRecord, error) {
	return append([]models.UploadRecord(nil), m.records...), nil
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newUploadService(t *testing.T, maxMB int) (UploadService, *storageStub, *memoryUploadRepo, *memoryAuditStore) {
	t.Helper()
	storage := &storageStub{}
	repo := &memoryUploadRepo{}
	auditor, store := testAuditor()
	svc := NewUploadService(storage, repo, auditor, maxMB, testLogger())
	return svc, storage, repo, store
}

func TestUploadServiceRejectsOversizedFile(t *testing.T) {
	svc, _, _, _ := newUploadService(t, 1)

	file := buildFileHeader(t, "big.png", bytes.Repeat([]byte("a"), 2*1024*1024))
	_, err := svc.Upload(context.Background(), adminRequest(), file)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadServiceRejectsDisallowedType(t *testing.T) {
	svc, _, _, _ := newUploadService(t, 5)

	file := buildFileHeader(t, "notes.txt", []byte("plain text content"))
	_, err := svc.Upload(context.Background(), adminRequest(), file)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceStoresAndAudits(t *testing.T) {
	svc, storage, repo, store := newUploadService(t, 5)

	file := buildFileHeader(t, "hero image.png", pngHeader)
	resp, err := svc.Upload(context.Background(), adminRequest(), file)
	require.NoError(t, err)
	require.Equal(t, "hero_image.png", resp.FileName)
	require.Equal(t, "image/png", resp.MimeType)
	require.NotEmpty(t, resp.Checksum)
	require.Len(t, storage.names, 1)
	require.Len(t, repo.records, 1)

	record := store.last()
	require.Equal(t, audit.ActionUpload, record.Action)
	require.Equal(t, "upload", record.Entity)
	require.Equal(t, "image/png", record.ExtraData["mime_type"])
}

func TestUploadServiceDeduplicatesByChecksum(t *testing.T) {
	svc, storage, repo, _ := newUploadService(t, 5)
	ctx := context.Background()

	first, err := svc.Upload(ctx, adminRequest(), buildFileHeader(t, "a.png", pngHeader))
	require.NoError(t, err)

	second, err := svc.Upload(ctx, adminRequest(), buildFileHeader(t, "b.png", pngHeader))
	require.NoError(t, err)

	require.Equal(t, first.Checksum, second.Checksum)
	require.Equal(t, first.URL, second.URL)
	require.Len(t, storage.names, 1, "identical content must not be stored twice")
	require.Len(t, repo.records, 1)
}

func TestUploadServiceRequiresFile(t *testing.T) {
	svc, _, _, _ := newUploadService(t, 5)
	_, err := svc.Upload(context.Background(), adminRequest(), nil)
	require.ErrorIs(t, err, ErrUploadMissing)
}
