package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"course-platform/internal/config"
	"course-platform/internal/shared/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	awssession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Asset is a file stored on the media host
type Asset struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Uploader publishes local files to the media host
type Uploader interface {
	Upload(ctx context.Context, localPath, folder string) (*Asset, error)
	Delete(ctx context.Context, key string) error
}

// S3Host stores media in an S3-compatible bucket
type S3Host struct {
	client s3iface.S3API
	cfg    config.MediaConfig
	log    logger.Logger
}

// NewS3Host builds a host from configuration. No request is sent until
// Connect or Upload is called.
func NewS3Host(cfg config.MediaConfig, log logger.Logger) (*S3Host, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("media bucket is required")
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.ForcePathStyle),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretKey, "")
	}

	sess, err := awssession.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create media session")
	}

	return NewS3HostWithClient(s3.New(sess), cfg, log), nil
}

// NewS3HostWithClient builds a host around an existing client
func NewS3HostWithClient(client s3iface.S3API, cfg config.MediaConfig, log logger.Logger) *S3Host {
	return &S3Host{
		client: client,
		cfg:    cfg,
		log:    log.WithComponent("media"),
	}
}

// Connect checks that the bucket is reachable, creating it when missing and
// EnsureBucket is set.
func (h *S3Host) Connect(ctx context.Context) error {
	_, err := h.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(h.cfg.Bucket),
	})
	if err == nil {
		h.log.WithFields(map[string]interface{}{"bucket": h.cfg.Bucket}).Info("Media host connected")
		return nil
	}
	if !isNotFound(err) || !h.cfg.EnsureBucket {
		return errors.Wrapf(err, "failed to reach bucket %q", h.cfg.Bucket)
	}

	_, err = h.client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(h.cfg.Bucket),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create bucket")
	}
	h.log.WithFields(map[string]interface{}{"bucket": h.cfg.Bucket}).Info("Media bucket created")
	return nil
}

// Ping reports whether the bucket is reachable
func (h *S3Host) Ping(ctx context.Context) error {
	_, err := h.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(h.cfg.Bucket),
	})
	return errors.Wrap(err, "media host unreachable")
}

// Upload stores the file at localPath under folder and returns its public URL
func (h *S3Host) Upload(ctx context.Context, localPath, folder string) (*Asset, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat upload")
	}

	key := h.Key(folder, filepath.Base(localPath))
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = h.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Body:        f,
		Bucket:      aws.String(h.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upload %q", key)
	}

	return &Asset{
		Key:         key,
		URL:         h.URL(key),
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

// Delete removes an object
func (h *S3Host) Delete(ctx context.Context, key string) error {
	_, err := h.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.cfg.Bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "failed to delete %q", key)
}

// Key builds the object key for name inside the configured root folder
func (h *S3Host) Key(folder, name string) string {
	return strings.TrimPrefix(path.Join(h.cfg.Folder, folder, name), "/")
}

// URL returns the public address of key
func (h *S3Host) URL(key string) string {
	if h.cfg.PublicBaseURL != "" {
		return strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/" + key
	}
	if h.cfg.Endpoint != "" {
		endpoint := strings.TrimRight(h.cfg.Endpoint, "/")
		if h.cfg.ForcePathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, h.cfg.Bucket, key)
		}
		scheme, host := "https://", endpoint
		if i := strings.Index(endpoint, "://"); i >= 0 {
			scheme, host = endpoint[:i+3], endpoint[i+3:]
		}
		return fmt.Sprintf("%s%s.%s/%s", scheme, h.cfg.Bucket, host, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.cfg.Bucket, h.cfg.Region, key)
}

func isNotFound(err error) bool {
	if awsErr, ok := err.(awserr.Error); ok {
		switch awsErr.Code() {
		case "NotFound", s3.ErrCodeNoSuchBucket:
			return true
		}
	}
	return false
}
