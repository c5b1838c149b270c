package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

// StackID is the immich ID for a stack, usually in the shape of UUIDv4.
type StackID string

// Stack contains relevant stack information returned by the immich API.
//
// See: https://api.immich.app/models/StackResponseDto
type Stack struct {
	ID             StackID         `json:"id"`
	PrimaryAssetID AssetID         `json:"primaryAssetId"`
	Assets         []AssetMetadata `json:"assets"`
}

// CreateStack merges the given assets into a single stack. The immich server
// makes the first asset ID the stack's primary (cover) asset, so callers must
// order the slice with the intended primary first.
//
// See: https://api.immich.app/endpoints/stacks/createStack
func (c Client) CreateStack(assetIDs []AssetID) (*Stack, error) {
	if len(assetIDs) < 2 {
		return nil, errors.New("a stack requires at least two assets")
	}
	payload := struct {
		AssetIDs []AssetID `json:"assetIds"`
	}{AssetIDs: assetIDs}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.Post("/stacks", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var stack Stack
	if err := json.NewDecoder(resp.Body).Decode(&stack); err != nil {
		return nil, err
	}
	return &stack, nil
}
