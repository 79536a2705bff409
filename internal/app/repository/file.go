package repository

import (
	"context"

	"github.com/filegram/panel/internal/app/model"
)

// FileQuery parameterizes the files list.
type FileQuery struct {
	Page   int
	Limit  int
	Search string // matches file name or caption
	Type   string // exact file_type filter
}

// FileRepository is read-only: files are written by the bot.
type FileRepository interface {
	List(ctx context.Context, q FileQuery) ([]model.File, int64, error)
}
