package uploads

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bonsai-backend/internal/shared/server/middleware"
	"bonsai-backend/internal/shared/server/respond"
	"bonsai-backend/internal/shared/storage/object"
	"bonsai-backend/internal/shared/telemetry"
	"bonsai-backend/internal/shared/util"
)

const (
	maxUploadBytes = 10 << 20
	presignExpires = 15 * time.Minute
)

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Handler serves image uploads. With a presign client it hands out signed S3
// PUT URLs; without one it accepts the bytes directly and stores them through
// the object store. Stored files are always streamed back via the files route.
type Handler struct {
	presign *s3.PresignClient
	bucket  string
	prefix  string
	store   object.ObjectStore
}

// NewHandler constructs a direct-upload handler over the object store.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{store: store}
}

// NewS3Handler constructs a handler that also presigns uploads to S3.
func NewS3Handler(ctx context.Context, region, bucket, prefix string, store object.ObjectStore) (*Handler, error) {
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &Handler{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		prefix:  strings.Trim(strings.TrimSpace(prefix), "/"),
		store:   store,
	}, nil
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presignUpload)
	rg.POST("/uploads", h.directUpload)
	rg.GET("/files/*key", h.serveFile)
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	Key              string `json:"key"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

func (h *Handler) presignUpload(c *gin.Context) {
	if h.presign == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "presigned uploads are not available, use POST /uploads", nil)
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.FileName = strings.TrimSpace(req.FileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	if _, ok := allowedContentTypes[req.ContentType]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.SizeBytes <= 0 || req.SizeBytes > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", nil)
		return
	}

	sanitized, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	key := path.Join(h.prefix, util.HashUserKey(userID), uuid.NewString()+"-"+sanitized)

	out, err := h.presign.PresignPutObject(c.Request.Context(), presignInput(h.bucket, key, req.ContentType), func(opts *s3.PresignOptions) {
		opts.Expires = presignExpires
	})
	if err != nil {
		telemetry.Error("uploads.presign_failed", map[string]any{
			"error":       err.Error(),
			"bucket":      h.bucket,
			"key":         key,
			"contentType": req.ContentType,
			"request_id":  c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.JSON(c, http.StatusOK, presignResponse{
		UploadURL:        out.URL,
		Key:              key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}

type uploadResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}

func (h *Handler) directUpload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file field is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	body := io.LimitReader(file, maxUploadBytes+1)
	key, size, mimeType, err := h.store.Save(c.Request.Context(), userID, header.Filename, body)
	if err != nil {
		telemetry.Error("uploads.save_failed", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}
	if _, ok := allowedContentTypes[mimeType]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "only jpeg, png and webp images are accepted", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, uploadResponse{
		Key:       key,
		URL:       "/api/v1/files/" + key,
		SizeBytes: size,
		MimeType:  mimeType,
	})
}

func (h *Handler) serveFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "key is required", nil)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func presignInput(bucket, key, contentType string) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
}
