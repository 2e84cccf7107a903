// Package storage implementa el ArchivoStore sobre object storage
// S3-compatible (AWS S3, MinIO, RustFS). Aquí viven los PDFs archivados de
// comprobantes ({socioID}/{numeroCompleto}.pdf) y los documentos de socios
// ({socioID}/docs/{nombre}).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appfact "github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/pkg/config"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

var _ appfact.ArchivoStore = (*S3ArchivoStore)(nil)

// S3ArchivoStore implementa ArchivoStore con el SDK v2 de AWS.
// Compatible con cualquier storage S3 (AWS, MinIO, RustFS).
type S3ArchivoStore struct {
	client *s3.Client
	bucket string
	log    *logger.Logger
}

// NewS3ArchivoStore construye el store desde la configuración.
func NewS3ArchivoStore(cfg config.StorageConfig, log *logger.Logger) (*S3ArchivoStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("storage: endpoint inválido: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &S3ArchivoStore{client: client, bucket: cfg.Bucket, log: log}, nil
}

// EnsureBucket crea el bucket si no existe. Llamar en el arranque.
func (s *S3ArchivoStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("storage: verificar bucket: %w", err)
	}

	s.log.Info().Str("bucket", s.bucket).Msg("Creando bucket de storage")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("storage: crear bucket: %w", err)
	}
	return nil
}

// Upload sube el contenido a la ruta. Con sobrescribir=false falla con
// ErrDuplicate si el objeto ya existe.
func (s *S3ArchivoStore) Upload(ctx context.Context, ruta string, contenido []byte, contentType string, sobrescribir bool) error {
	if ruta == "" {
		return errors.New("storage: ruta requerida")
	}
	if !sobrescribir {
		existe, err := s.existe(ctx, ruta)
		if err != nil {
			return err
		}
		if existe {
			return domain.ErrDuplicate
		}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(ruta),
		Body:        bytes.NewReader(contenido),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: subir %s: %w", ruta, err)
	}
	s.log.Debug().Str("ruta", ruta).Int("bytes", len(contenido)).Msg("Objeto subido")
	return nil
}

// Download baja el contenido de la ruta y su content type.
// Objeto inexistente → ErrNotFound.
func (s *S3ArchivoStore) Download(ctx context.Context, ruta string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ruta),
	})
	if err != nil {
		if esNoEncontrado(err) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("storage: bajar %s: %w", ruta, err)
	}
	defer out.Body.Close()

	contenido, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("storage: leer %s: %w", ruta, err)
	}
	return contenido, aws.ToString(out.ContentType), nil
}

// Delete elimina el objeto de la ruta. Idempotente.
func (s *S3ArchivoStore) Delete(ctx context.Context, ruta string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ruta),
	})
	if err != nil {
		return fmt.Errorf("storage: eliminar %s: %w", ruta, err)
	}
	return nil
}

func (s *S3ArchivoStore) existe(ctx context.Context, ruta string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ruta),
	})
	if err != nil {
		if esNoEncontrado(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: verificar %s: %w", ruta, err)
	}
	return true, nil
}

// esNoEncontrado cubre las variantes de "no existe" de los storage S3-compatibles.
func esNoEncontrado(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}
	return strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey")
}
