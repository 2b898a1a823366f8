package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/trackvers/trackvers/internal/common"
	sc "github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// Seams for testing the AWS presign path without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// CatalogService owns the shared software table: listing for everyone,
// CRUD and logo uploads for admins.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *CatalogService {
	return &CatalogService{db: db, repomanager: m, config: cfg}
}

// List returns the full catalog ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]*models.Software, error) {
	items, err := s.repomanager.Software(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing software: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListByIDs(ctx context.Context, ids []string) ([]*models.Software, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := s.repomanager.Software(s.db).ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing software: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Software, error) {
	return s.repomanager.Software(s.db).Get(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, item *models.Software) error {
	if item.ID == "" || item.Name == "" {
		return fmt.Errorf("%w: id and name are required", common.ErrorValidation)
	}

	repo := s.repomanager.Software(s.db)
	if _, err := repo.Get(ctx, item.ID); err == nil {
		return fmt.Errorf("%w: software %q", common.ErrorAlreadyExists, item.ID)
	}

	if err := repo.Create(ctx, item); err != nil {
		return fmt.Errorf("error creating software: %w", err)
	}
	return nil
}

func (s *CatalogService) Update(ctx context.Context, item *models.Software) error {
	if item.ID == "" || item.Name == "" {
		return fmt.Errorf("%w: id and name are required", common.ErrorValidation)
	}
	if err := s.repomanager.Software(s.db).Update(ctx, item); err != nil {
		return err
	}
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Software(s.db).Delete(ctx, id)
}

func (s *CatalogService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// LogoUploadURL verifies the software exists, then issues a presigned PUT URL
// for its logo and records the public object URL on the row. The admin client
// uploads the bytes directly to object storage.
func (s *CatalogService) LogoUploadURL(ctx context.Context, softwareID string) (string, error) {
	repo := s.repomanager.Software(s.db)
	if _, err := repo.Get(ctx, softwareID); err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := fmt.Sprintf("logos/%s/%s", softwareID, uuid.New())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("error presigning put: %w", err)
	}

	publicURL := fmt.Sprintf("%s%s/%s", s.config.S3BaseEndpoint, bucket, key)
	if err := repo.SetLogoURL(ctx, softwareID, publicURL); err != nil {
		return "", err
	}

	return req.URL, nil
}
