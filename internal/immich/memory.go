package immich

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
)

// memoCache is a rwClient memoizing API responses in memory for the lifetime
// of one run.
type memoCache struct {
	*lru.Cache[string, any]
	conf CacheConfig
}

// GetAlbumAssets attempts to retrieve the asset metadata for the given album
// from the memo. An error is returned if the data is not available.
func (m memoCache) GetAlbumAssets(id AlbumID) ([]AssetMetadata, error) {
	val, err := m.get(m.albumKey(id))
	if err != nil {
		return nil, err
	}
	assets, ok := val.([]AssetMetadata)
	if !ok {
		return nil, fmt.Errorf("unexpected album asset type: %T", val)
	}
	return assets, nil
}

// StoreAlbumAssets writes the asset metadata for the given album to the memo.
func (m memoCache) StoreAlbumAssets(id AlbumID, assets []AssetMetadata) error {
	m.Add(m.albumKey(id), assets)
	return nil
}

// GetAlbums attempts to retrieve the list of albums from the memo. An error
// is returned if the data is not available.
func (m memoCache) GetAlbums() ([]Album, error) {
	val, err := m.get(m.albumsKey())
	if err != nil {
		return nil, err
	}
	albums, ok := val.([]Album)
	if !ok {
		return nil, fmt.Errorf("unexpected album type: %T", val)
	}
	return albums, nil
}

// StoreAlbums writes the list of albums to the memo.
func (m memoCache) StoreAlbums(albums []Album) error {
	m.Add(m.albumsKey(), albums)
	return nil
}

// GetDuplicates attempts to retrieve the duplicate groups from the memo. An
// error is returned if the data is not available.
func (m memoCache) GetDuplicates() ([]DuplicateGroup, error) {
	val, err := m.get(m.duplicatesKey())
	if err != nil {
		return nil, err
	}
	groups, ok := val.([]DuplicateGroup)
	if !ok {
		return nil, fmt.Errorf("unexpected duplicate group type: %T", val)
	}
	return groups, nil
}

// StoreDuplicates writes the duplicate groups to the memo.
func (m memoCache) StoreDuplicates(groups []DuplicateGroup) error {
	m.Add(m.duplicatesKey(), groups)
	return nil
}

// get is a helper method to return an error if the key does not exist in the
// memo.
func (m memoCache) get(key string) (any, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

// Helper methods for generating keys.
func (m memoCache) albumKey(id AlbumID) string { return fmt.Sprintf("album-%s", id) }
func (m memoCache) albumsKey() string          { return "albums" }
func (m memoCache) duplicatesKey() string      { return "duplicates" }

// newMemoCache initializes a [memoCache] client. The entry count is derived
// from the configured byte size and an average response weight.
func newMemoCache(conf CacheConfig) memoCache {
	avgResponseSize, _ := humanize.ParseBytes("64 KB")
	cacheSize := 1
	if configuredSize := uint64(conf.Size) / avgResponseSize; configuredSize > 0 {
		cacheSize = int(configuredSize)
	}
	l, _ := lru.New[string, any](cacheSize)
	return memoCache{l, conf}
}
