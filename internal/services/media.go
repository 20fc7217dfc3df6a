package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maheynails/studio-api/internal/config"
)

// Course videos live under a fixed prefix inside the media bucket.
const videoFolder = "course-videos"

var videoExtRe = regexp.MustCompile(`(?i)\.(mp4|mov|avi|webm)$`)

// MediaStore wraps the hosted object store for course videos. Objects are
// referenced by their key; public URLs are derived from the store endpoint.
type MediaStore struct {
	client *minio.Client
	bucket string
}

func NewMediaStore(ctx context.Context, cfg config.Config) (*MediaStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect media store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create media bucket: %w", err)
		}
	}

	return &MediaStore{client: client, bucket: cfg.MinioBucket}, nil
}

// UploadVideo streams a video file into the store and returns its public URL
// together with the object key needed for later deletion.
func (m *MediaStore) UploadVideo(ctx context.Context, r io.Reader, size int64, filename, contentType string) (url, objectName string, err error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".mp4"
	}
	objectName = fmt.Sprintf("%s/%s%s", videoFolder, uuid.NewString(), ext)

	_, err = m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload video: %w", err)
	}

	return m.ObjectURL(objectName), objectName, nil
}

// Delete removes an object by key. Callers treat failures as best-effort:
// a dangling remote asset is preferable to a blocked admin action.
func (m *MediaStore) Delete(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete media object %s: %w", objectName, err)
	}
	return nil
}

func (m *MediaStore) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, objectName)
}

// ThumbnailURL swaps the video extension for .jpg. The store serves a still
// frame at that path for every uploaded video.
func ThumbnailURL(videoURL string) string {
	return videoExtRe.ReplaceAllString(videoURL, ".jpg")
}
