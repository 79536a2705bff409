package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
)

var (
	// ErrChannelExists signals a duplicate channel_id on add.
	ErrChannelExists = errors.New("channel already added")

	// ErrChannelNotFound signals that no channel matches the given id.
	ErrChannelNotFound = errors.New("channel not found")
)

// FsubRepository manages the force-subscribe channel list.
type FsubRepository interface {
	List(ctx context.Context) ([]model.FsubChannel, error)
	// Add fails with ErrChannelExists when the channel_id is already listed.
	Add(ctx context.Context, ch *model.FsubChannel) error
	Remove(ctx context.Context, channelID int64) error
}
