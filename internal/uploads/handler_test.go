package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	localstore "bonsai-backend/internal/shared/storage/object/local"
)

func TestPresignSignedHeadersExcludeContentLength(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	client := s3.NewFromConfig(cfg)
	presigner := s3.NewPresignClient(client)

	input := presignInput("bucket", "images/user/photo.jpg", "image/jpeg")
	out, err := presigner.PresignPutObject(context.Background(), input)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	parsed, err := url.Parse(out.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	signed := parsed.Query().Get("X-Amz-SignedHeaders")
	if signed == "" {
		t.Fatalf("expected X-Amz-SignedHeaders")
	}
	if strings.Contains(signed, "content-length") {
		t.Fatalf("unexpected content-length in signed headers: %s", signed)
	}
	if !strings.Contains(signed, "host") {
		t.Fatalf("expected host in signed headers: %s", signed)
	}
}

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(localstore.New(t.TempDir()))
	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestDirectUploadAndServe(t *testing.T) {
	r := newUploadRouter(t)
	content := pngBytes(t)

	body, contentType := multipartBody(t, "photo.png", content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", resp.Code, resp.Body.String())
	}
	var uploaded uploadResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if uploaded.Key == "" || uploaded.MimeType != "image/png" {
		t.Fatalf("unexpected upload response %+v", uploaded)
	}
	if uploaded.SizeBytes != int64(len(content)) {
		t.Fatalf("size mismatch: %d vs %d", uploaded.SizeBytes, len(content))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/files/"+uploaded.Key, nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("serve: %d", resp.Code)
	}
	if !bytes.Equal(resp.Body.Bytes(), content) {
		t.Fatalf("served bytes differ from upload")
	}
}

func TestDirectUploadRejectsNonImages(t *testing.T) {
	r := newUploadRouter(t)

	body, contentType := multipartBody(t, "notes.txt", []byte("plain text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image upload, got %d", resp.Code)
	}
}

func TestDirectUploadRequiresFile(t *testing.T) {
	r := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", strings.NewReader(""))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPresignUnavailableWithoutS3(t *testing.T) {
	r := newUploadRouter(t)

	payload, _ := json.Marshal(presignRequest{FileName: "a.png", ContentType: "image/png", SizeBytes: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when presign is not configured, got %d", resp.Code)
	}
}
