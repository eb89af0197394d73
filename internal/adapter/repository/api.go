package repository

import (
	"context"
	"io"
	"net/url"

	apperrors "github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/apiclient"
)

// APIClient is the subset of the HTTP accessor the repositories use
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []apiclient.FilePart, out interface{}) error
	PutMultipart(ctx context.Context, path string, fields map[string]string, files []apiclient.FilePart, out interface{}) error
	Download(ctx context.Context, path string, w io.Writer) (string, error)
}

var _ APIClient = (*apiclient.Client)(nil)

// path joins escaped segments
var path = apiclient.PathEscape

func fileParts(field string, files []repositories.File) []apiclient.FilePart {
	parts := make([]apiclient.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, apiclient.FilePart{
			Field:       field,
			Name:        f.Name,
			ContentType: f.ContentType,
			Content:     f.Content,
		})
	}
	return parts
}

func isNotFound(err error) bool {
	return apperrors.StatusOf(err) == 404
}
