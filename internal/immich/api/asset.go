package api

import "path"

// AssetID is the immich ID for an asset, usually in the shape of UUIDv4.
type AssetID string

// AssetMetadata contains relevant asset information retrieved from the immich API.
//
// See: https://api.immich.app/endpoints/assets/getAssetInfo
type AssetMetadata struct {
	ID           AssetID `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"originalFileName"`
	OriginalPath string  `json:"originalPath"`
}

// DisplayName returns the asset's original filename, falling back to the
// basename of its library path when the name is missing from the response.
func (md AssetMetadata) DisplayName() string {
	if md.Name != "" {
		return md.Name
	}
	if md.OriginalPath == "" {
		return ""
	}
	return path.Base(md.OriginalPath)
}
