package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jimlawless/whereami"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/pkg/e"
)

// ImageRepo хранит изображения продуктов в объектном хранилище.
type ImageRepo struct {
	client *miniogo.Client
	cfg    *cfg.MinIOCfg
}

func NewImageRepo(client *miniogo.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upload сохраняет объект и возвращает публичный путь к нему.
func (i *ImageRepo) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	_, err := i.client.PutObject(ctx, i.cfg.BucketName, objectKey,
		bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return fmt.Sprintf("/%s/%s", i.cfg.BucketName, objectKey), nil
}

func (i *ImageRepo) Delete(ctx context.Context, objectKey string) error {
	err := i.client.RemoveObject(ctx, i.cfg.BucketName, objectKey, miniogo.RemoveObjectOptions{})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
