package immich

import (
	"errors"
	"fmt"
	"log/slog"

	"immich-stacker/internal/immich/api"
)

// Client provides an API for reading immich albums, assets, and duplicate
// groups, and for creating asset stacks. Reads are memoized in memory so
// repeated lookups during a run reuse the first server response.
type Client struct {
	memo   rwClient
	remote remoteClient
}

// rwClient is a client that can both read and write, used for the in-memory
// memoization layer, not the remote immich server.
type rwClient interface {
	readClient
	writeClient
}

// readClient is a client that can provide immich albums, asset metadata, and
// duplicate groups.
type readClient interface {
	GetAlbums() ([]Album, error)
	GetAlbumAssets(id AlbumID) ([]AssetMetadata, error)
	GetDuplicates() ([]DuplicateGroup, error)
}

// writeClient is a client that can store immich albums, asset metadata, and
// duplicate groups.
type writeClient interface {
	StoreAlbums(albums []Album) error
	StoreAlbumAssets(id AlbumID, assets []AssetMetadata) error
	StoreDuplicates(groups []DuplicateGroup) error
}

// remoteClient is a client backed by the immich server. It is the only layer
// that can create stacks.
type remoteClient interface {
	IsConnected() error
	CreateStack(ids []AssetID) (*Stack, error)
	readClient
}

// GetAlbums retrieves all immich albums. It first checks the in-memory memo,
// then the remote server, storing the response in the memo on success.
func (c Client) GetAlbums() ([]Album, error) {
	{
		albums, err := c.memo.GetAlbums()
		if err == nil {
			slog.Debug("found albums in memo", "count", len(albums))
			return albums, nil
		}
		slog.Debug("failed to get albums from memo", "error", err)
	}
	slog.Debug("fetching albums from remote")
	albums, err := c.remote.GetAlbums()
	if err != nil {
		return nil, fmt.Errorf("get albums: %w", err)
	}
	if err := c.memo.StoreAlbums(albums); err != nil {
		slog.Debug("failed to store albums in memo", "error", err)
	}
	return albums, nil
}

// GetAlbumByName retrieves the album whose name matches exactly, using the
// memoized album listing. The returned error wraps [api.ErrAlbumNotFound]
// when no album has the requested name.
func (c Client) GetAlbumByName(name string) (*Album, error) {
	albums, err := c.GetAlbums()
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		if album.Name == name {
			return &album, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", api.ErrAlbumNotFound, name)
}

// GetAlbumAssets gets the asset metadata for the given immich album ID. It
// first checks the in-memory memo, then the remote server, storing the
// response in the memo on success.
func (c Client) GetAlbumAssets(id AlbumID) ([]AssetMetadata, error) {
	log := slog.With("id", id)
	{
		assets, err := c.memo.GetAlbumAssets(id)
		if err == nil {
			log.Debug("found album asset metadata in memo", "count", len(assets))
			return assets, nil
		}
		log.Debug("failed to get album asset metadata from memo", "error", err)
	}
	log.Debug("fetching album asset metadata from remote")
	assets, err := c.remote.GetAlbumAssets(id)
	if err != nil {
		return nil, fmt.Errorf("get album assets: %w", err)
	}
	if err := c.memo.StoreAlbumAssets(id, assets); err != nil {
		log.Debug("failed to store album asset metadata in memo", "error", err)
	}
	return assets, nil
}

// GetDuplicates retrieves the duplicate groups flagged by the immich server.
// It first checks the in-memory memo, then the remote server, storing the
// response in the memo on success.
func (c Client) GetDuplicates() ([]DuplicateGroup, error) {
	{
		groups, err := c.memo.GetDuplicates()
		if err == nil {
			slog.Debug("found duplicate groups in memo", "count", len(groups))
			return groups, nil
		}
		slog.Debug("failed to get duplicate groups from memo", "error", err)
	}
	slog.Debug("fetching duplicate groups from remote")
	groups, err := c.remote.GetDuplicates()
	if err != nil {
		return nil, fmt.Errorf("get duplicates: %w", err)
	}
	if err := c.memo.StoreDuplicates(groups); err != nil {
		slog.Debug("failed to store duplicate groups in memo", "error", err)
	}
	return groups, nil
}

// CreateStack merges the given assets into a single stack on the immich
// server. The first ID becomes the stack's primary asset. Writes always go
// straight to the remote and are never memoized.
func (c Client) CreateStack(ids []AssetID) (Stack, error) {
	stack, err := c.remote.CreateStack(ids)
	if err != nil {
		return Stack{}, fmt.Errorf("create stack: %w", err)
	}
	slog.Debug("created stack", "id", stack.ID, "primary", stack.PrimaryAssetID, "assets", len(ids))
	return *stack, nil
}

// IsConnected reports whether the remote immich server is reachable and
// accepts the configured API key.
func (c Client) IsConnected() error {
	return c.remote.IsConnected()
}

// clientOpt is used for configuring the [Client].
type clientOpt func(*Client)

// WithMemoCache adds an in-memory memoization layer to the Client, if
// enabled. Only one memo layer can be configured. If multiple are provided,
// the last is used.
func WithMemoCache(conf CacheConfig) clientOpt {
	return func(c *Client) {
		if !conf.Enabled {
			return
		}
		c.memo = newMemoCache(conf)
	}
}

// WithRemote adds a remote client. Only one remote client can be configured.
// If multiple are provided, the last is used.
func WithRemote(conf api.Config) clientOpt {
	return func(c *Client) {
		c.remote = api.NewClient(conf)
	}
}

// NewClient initializes a new client with the provided options. See
// [WithMemoCache] and [WithRemote].
func NewClient(opts ...clientOpt) *Client {
	noop := noopClient{}
	client := &Client{
		memo:   noop,
		remote: noop,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// noopClient provides a noop implementation for the memo and remote clients.
type noopClient struct{}

func (noopClient) CreateStack([]AssetID) (*Stack, error)           { return nil, errors.New("noop") }
func (noopClient) GetAlbumAssets(AlbumID) ([]AssetMetadata, error) { return nil, errors.New("noop") }
func (noopClient) GetAlbums() ([]Album, error)                     { return nil, errors.New("noop") }
func (noopClient) GetDuplicates() ([]DuplicateGroup, error)        { return nil, errors.New("noop") }
func (noopClient) IsConnected() error                              { return errors.New("noop") }
func (noopClient) StoreAlbumAssets(AlbumID, []AssetMetadata) error { return errors.New("noop") }
func (noopClient) StoreAlbums([]Album) error                       { return errors.New("noop") }
func (noopClient) StoreDuplicates([]DuplicateGroup) error          { return errors.New("noop") }
