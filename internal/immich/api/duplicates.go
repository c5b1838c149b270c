package api

import "encoding/json"

// DuplicateID is the immich ID for a duplicate group, usually in the shape of
// UUIDv4.
type DuplicateID string

// DuplicateGroup is a set of assets the immich server's own duplicate
// detection has flagged as likely duplicates of one another.
//
// See: https://api.immich.app/models/DuplicateResponseDto
type DuplicateGroup struct {
	ID     DuplicateID     `json:"duplicateId"`
	Assets []AssetMetadata `json:"assets"`
}

// GetDuplicates retrieves all server-detected duplicate groups from the
// immich API.
//
// See: https://api.immich.app/endpoints/duplicates/getAssetDuplicates
func (c Client) GetDuplicates() ([]DuplicateGroup, error) {
	resp, err := c.Get("/duplicates")
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	var groups []DuplicateGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, err
	}
	return groups, nil
}
