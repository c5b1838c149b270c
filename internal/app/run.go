package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"immich-stacker/internal/immich"
	"immich-stacker/internal/stacker"
)

// stackSource provides the immich reads and writes one stacking run needs.
type stackSource interface {
	GetAlbums() ([]immich.Album, error)
	GetAlbumByName(name string) (*immich.Album, error)
	GetAlbumAssets(id immich.AlbumID) ([]immich.AssetMetadata, error)
	GetDuplicates() ([]immich.DuplicateGroup, error)
	CreateStack(ids []immich.AssetID) (immich.Stack, error)
}

// Summary accumulates totals across every scope of a run. A scope is one
// duplicate group or one album.
type Summary struct {
	Scopes        int
	Planned       int
	Created       int
	AssetsStacked int
	Skipped       int
	ScopesFailed  int
}

// Stacker plans and optionally submits stacks for the scopes of one run.
type Stacker struct {
	source  stackSource
	planner *stacker.Planner
	submit  bool
	report  *reporter
	summary Summary
}

// NewStacker wires a stacking run over the given source. When submit is
// false, planned stacks are reported but nothing is created.
func NewStacker(source stackSource, conf StackingConfig, submit bool, out io.Writer) *Stacker {
	return &Stacker{
		source:  source,
		planner: stacker.New(stacker.Options{PreferredExtensions: conf.PreferredExtensions}),
		submit:  submit,
		report:  newReporter(out),
	}
}

// RunDuplicates plans every duplicate group the server has flagged, each
// group in isolation.
func (s *Stacker) RunDuplicates() error {
	groups, err := s.source.GetDuplicates()
	if err != nil {
		return err
	}
	slog.Info("found duplicate groups", "count", len(groups))
	failed := 0
	for _, group := range groups {
		scope := fmt.Sprintf("duplicate group %s", group.ID)
		if err := s.processScope(scope, group.Assets); err != nil {
			slog.Error("duplicate group failed", "group", group.ID, "error", err)
			failed++
		}
	}
	s.summary.ScopesFailed += failed
	if len(groups) > 0 && failed == len(groups) {
		return fmt.Errorf("all %d duplicate groups failed", len(groups))
	}
	return nil
}

// RunAlbum plans a single album. The argument may be an album ID or an album
// name; names are resolved against the album listing.
func (s *Stacker) RunAlbum(idOrName string) error {
	album, err := s.resolveAlbum(idOrName)
	if err != nil {
		return err
	}
	slog.Info("found album", "name", album.Name, "id", album.ID, "asset_count", album.AssetCount)
	if err := s.runOneAlbum(album); err != nil {
		s.summary.ScopesFailed++
		return err
	}
	return nil
}

// RunAllAlbums plans every album, one at a time, in the server's listing
// order. A failing album is reported and skipped so the remaining albums
// still run.
func (s *Stacker) RunAllAlbums() error {
	albums, err := s.source.GetAlbums()
	if err != nil {
		return err
	}
	slog.Info("found albums", "count", len(albums))
	failed := 0
	for _, album := range albums {
		if err := s.runOneAlbum(&album); err != nil {
			slog.Error("album failed", "name", album.Name, "id", album.ID, "error", err)
			failed++
		}
	}
	s.summary.ScopesFailed += failed
	if len(albums) > 0 && failed == len(albums) {
		return fmt.Errorf("all %d albums failed", len(albums))
	}
	return nil
}

// Summary returns the cumulative totals of the run so far.
func (s *Stacker) Summary() Summary {
	return s.summary
}

// PrintSummary writes the cumulative totals of the run.
func (s *Stacker) PrintSummary() {
	s.report.summary(s.summary, s.submit)
}

func (s *Stacker) resolveAlbum(idOrName string) (*immich.Album, error) {
	if err := uuid.Validate(idOrName); err == nil {
		albums, err := s.source.GetAlbums()
		if err != nil {
			return nil, err
		}
		for _, album := range albums {
			if album.ID == immich.AlbumID(idOrName) {
				return &album, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", immich.ErrAlbumNotFound, idOrName)
	}
	return s.source.GetAlbumByName(idOrName)
}

func (s *Stacker) runOneAlbum(album *immich.Album) error {
	assets, err := s.source.GetAlbumAssets(album.ID)
	if err != nil {
		return err
	}
	return s.processScope(albumScope(album), assets)
}

// processScope plans one scope's candidates, reports the result, and submits
// the requests when the run is live. The first failed submission fails the
// scope.
func (s *Stacker) processScope(scope string, candidates []immich.AssetMetadata) error {
	plan := s.planner.Plan(candidates)
	s.summary.Scopes++
	s.summary.Planned += len(plan.Requests)
	s.summary.Skipped += len(plan.Skips)
	for _, skip := range plan.Skips {
		slog.Warn("skipping group", "scope", scope, "key", skip.Key, "reason", skip.Reason, "assets", len(skip.Assets))
	}
	if plan.Empty() {
		slog.Debug("nothing to stack", "scope", scope)
		return nil
	}
	s.report.plan(scope, plan)
	if !s.submit {
		return nil
	}
	for _, req := range plan.Requests {
		stack, err := s.source.CreateStack(req.AssetIDs())
		if err != nil {
			return fmt.Errorf("stack %q: %w", req.Key, err)
		}
		slog.Info("created stack", "scope", scope, "key", req.Key, "stack", stack.ID, "assets", len(req.Assets))
		s.summary.Created++
		s.summary.AssetsStacked += len(req.Assets)
	}
	return nil
}

func albumScope(album *immich.Album) string {
	if album.Name != "" {
		return fmt.Sprintf("album %q", album.Name)
	}
	return fmt.Sprintf("album %s", album.ID)
}
