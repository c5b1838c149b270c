package immich

import "immich-stacker/internal/immich/api"

// Redeclare the immich API types.
type AssetID = api.AssetID
type AssetMetadata = api.AssetMetadata
type Album = api.Album
type AlbumID = api.AlbumID
type DuplicateGroup = api.DuplicateGroup
type DuplicateID = api.DuplicateID
type Stack = api.Stack
type StackID = api.StackID

// ErrAlbumNotFound is returned by album lookups when no album matches.
var ErrAlbumNotFound = api.ErrAlbumNotFound
