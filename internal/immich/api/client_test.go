package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"immich-stacker/internal/immich/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(api.Config{URL: server.URL, APIKey: "key-123"})
}

func TestClientRewritesRequests(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	})

	if _, err := client.GetAlbums(); err != nil {
		t.Fatalf("GetAlbums returned error: %v", err)
	}
	if gotPath != "/api/albums" {
		t.Fatalf(`expected request path "/api/albums", got %q`, gotPath)
	}
	if gotKey != "key-123" {
		t.Fatalf(`expected api key header "key-123", got %q`, gotKey)
	}
	if gotAccept != "application/json" {
		t.Fatalf(`expected accept header "application/json", got %q`, gotAccept)
	}
}

func TestClientUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetAlbums()
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if !strings.Contains(err.Error(), "invalid immich api key") {
		t.Fatalf("expected an invalid api key error, got %v", err)
	}
}

func TestGetAlbumAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/albums/album-1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": "album-1",
			"albumName": "Vacation",
			"assets": [
				{"id": "asset-1", "type": "IMAGE", "originalFileName": "IMG_0001.JPG"},
				{"id": "asset-2", "type": "IMAGE", "originalFileName": "IMG_0001.NEF"}
			]
		}`))
	})

	assets, err := client.GetAlbumAssets("album-1")
	if err != nil {
		t.Fatalf("GetAlbumAssets returned error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].ID != "asset-1" || assets[0].Name != "IMG_0001.JPG" {
		t.Fatalf("unexpected first asset: %+v", assets[0])
	}
}

func TestGetAlbumByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "album-1", "albumName": "Vacation", "assetCount": 4},
			{"id": "album-2", "albumName": "Pets", "assetCount": 2}
		]`))
	})

	album, err := client.GetAlbumByName("Pets")
	if err != nil {
		t.Fatalf("GetAlbumByName returned error: %v", err)
	}
	if album.ID != "album-2" {
		t.Fatalf(`expected album "album-2", got %q`, album.ID)
	}

	if _, err := client.GetAlbumByName("Missing"); err != api.ErrAlbumNotFound {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestGetDuplicates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/duplicates" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{
				"duplicateId": "dupe-1",
				"assets": [
					{"id": "asset-1", "originalFileName": "IMG_0001.JPG"},
					{"id": "asset-2", "originalFileName": "IMG_0001.NEF"}
				]
			}
		]`))
	})

	groups, err := client.GetDuplicates()
	if err != nil {
		t.Fatalf("GetDuplicates returned error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].ID != "dupe-1" || len(groups[0].Assets) != 2 {
		t.Fatalf("unexpected group: %+v", groups[0])
	}
}

func TestCreateStack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/stacks" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload struct {
			AssetIDs []api.AssetID `json:"assetIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		// The first ID becomes the primary, so order must be preserved.
		if len(payload.AssetIDs) != 2 || payload.AssetIDs[0] != "asset-2" {
			t.Fatalf("unexpected payload: %+v", payload.AssetIDs)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "stack-1", "primaryAssetId": "asset-2"}`))
	})

	stack, err := client.CreateStack([]api.AssetID{"asset-2", "asset-1"})
	if err != nil {
		t.Fatalf("CreateStack returned error: %v", err)
	}
	if stack.ID != "stack-1" || stack.PrimaryAssetID != "asset-2" {
		t.Fatalf("unexpected stack: %+v", stack)
	}
}

func TestCreateStackRequiresTwoAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for an invalid stack")
	})

	if _, err := client.CreateStack([]api.AssetID{"asset-1"}); err == nil {
		t.Fatal("expected an error for a single-asset stack")
	}
}
