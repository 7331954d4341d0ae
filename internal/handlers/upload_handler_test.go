package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/services"
)

type stubDocStore struct {
	created []*models.Document
}

func (s *stubDocStore) Create(document *models.Document) error {
	s.created = append(s.created, document)
	return nil
}

func (s *stubDocStore) FindByID(id uuid.UUID) (*models.Document, error) {
	return nil, nil
}

func (s *stubDocStore) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	return nil, nil
}

type stubStorage struct {
	deleted []string
}

func (s *stubStorage) SaveFile(file *multipart.FileHeader, docType string) (string, string, error) {
	return "stored.pdf", "/tmp/uploads/stored.pdf", nil
}

func (s *stubStorage) GetFilePath(filename string) string { return "/tmp/uploads/" + filename }

func (s *stubStorage) DeleteFile(filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

func (s *stubStorage) EnsureUploadDir() error { return nil }

type stubParser struct {
	text string
}

func (p *stubParser) ExtractText(filePath string) (string, error) { return p.text, nil }

type stubUploadEmbedder struct{}

func (stubUploadEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubIndex struct{}

func (stubIndex) InitCollection() error { return nil }

func (stubIndex) IndexDocument(ctx context.Context, docID, docType, filename string, embedding []float32) error {
	return nil
}

func (stubIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType, excludeDocID string, limit int) ([]services.IndexedDocument, error) {
	return nil, nil
}

func (stubIndex) DeleteDocument(ctx context.Context, docID string) error { return nil }

func newUploadApp(parser services.PDFParserService, docs *stubDocStore, storage *stubStorage) *fiber.App {
	h := NewUploadHandler(docs, storage, parser, matcher.NewTextNormalizer(0), stubUploadEmbedder{}, stubIndex{}, 10<<20)
	app := fiber.New()
	app.Post("/api/v1/upload/resume", h.HandleUploadResume)
	return app
}

func newUploadRequest(t *testing.T) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/resume", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadRejectsEmptyExtractedText(t *testing.T) {
	docs := &stubDocStore{}
	storage := &stubStorage{}
	app := newUploadApp(&stubParser{text: "  \n\t "}, docs, storage)

	resp, err := app.Test(newUploadRequest(t))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), matcher.ErrEmptyInput.Error())

	// Nothing to match against, so neither the file nor a record is kept.
	assert.Empty(t, docs.created)
	assert.Equal(t, []string{"stored.pdf"}, storage.deleted)
}

func TestUploadPreviewTruncatesOnRuneBoundary(t *testing.T) {
	// 600 two-byte runes: a byte-indexed cut at 500 would land mid-rune.
	text := strings.Repeat("é", 600)
	docs := &stubDocStore{}
	app := newUploadApp(&stubParser{text: text}, docs, &stubStorage{})

	resp, err := app.Test(newUploadRequest(t))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var uploaded models.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))

	assert.True(t, utf8.ValidString(uploaded.TextPreview))
	assert.Equal(t, textPreviewLength, utf8.RuneCountInString(uploaded.TextPreview))
	assert.Equal(t, strings.Repeat("é", textPreviewLength), uploaded.TextPreview)

	require.Len(t, docs.created, 1)
	assert.Equal(t, text, docs.created[0].RawText)
}
