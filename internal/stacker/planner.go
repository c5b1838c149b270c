// Package stacker decides which immich assets should be merged into stacks.
// Planning is pure: given the same candidates and options it always produces
// the same plan, and it never talks to the network.
package stacker

import (
	"immich-stacker/internal/immich"
)

// DefaultPreferredExtensions are the extensions that win primary selection
// when the configuration does not say otherwise. JPEGs make the most useful
// stack covers for RAW+JPG captures.
var DefaultPreferredExtensions = []string{".jpg", ".jpeg", ".jpe"}

// SkipSameExtension is the reason attached to partitions whose assets all
// share one extension. Identical formats with identical names are true
// duplicates rather than format variants, so no primary can be selected.
const SkipSameExtension = "all assets share the same extension"

// Options configures how candidates are partitioned and primaries selected.
type Options struct {
	// PreferredExtensions lists the extensions (leading dot included) that
	// win primary selection. Matching is case-insensitive. When empty,
	// DefaultPreferredExtensions applies.
	PreferredExtensions []string
}

// Request describes one stack to create: two or more assets sharing a
// grouping key, ordered with the designated primary asset first.
type Request struct {
	Key     string
	Primary immich.AssetMetadata
	Assets  []immich.AssetMetadata
}

// AssetIDs returns the asset IDs of the request in submission order, primary
// first.
func (r Request) AssetIDs() []immich.AssetID {
	ids := make([]immich.AssetID, 0, len(r.Assets))
	for _, md := range r.Assets {
		ids = append(ids, md.ID)
	}
	return ids
}

// Skip describes a candidate partition that was left unstacked, with the
// reason it was passed over.
type Skip struct {
	Key    string
	Reason string
	Assets []immich.AssetMetadata
}

// Plan is the result of planning one scope (an album or a duplicate group).
type Plan struct {
	Requests []Request
	Skips    []Skip
}

// Empty reports whether the plan contains neither requests nor skips.
func (p Plan) Empty() bool {
	return len(p.Requests) == 0 && len(p.Skips) == 0
}

// Planner partitions candidate assets into stack requests.
type Planner struct {
	preferred map[string]struct{}
}

// New initializes a Planner from the provided options.
func New(opts Options) *Planner {
	exts := opts.PreferredExtensions
	if len(exts) == 0 {
		exts = DefaultPreferredExtensions
	}
	preferred := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		preferred[Ext(ext)] = struct{}{}
	}
	return &Planner{preferred: preferred}
}

// partition is a helper type holding the candidates that share one grouping
// key, in the order they were encountered.
type partition struct {
	key    string
	assets []immich.AssetMetadata
	seen   map[immich.AssetID]struct{}
}

// Plan partitions the candidates of one scope by grouping key and emits one
// Request per partition of two or more assets. Partitions where no primary
// can be selected are reported as Skips instead. The input order is the order
// of the server's response, so the result is deterministic for a given
// candidate set.
func (p *Planner) Plan(candidates []immich.AssetMetadata) Plan {
	var order []*partition
	byKey := make(map[string]*partition)
	for _, md := range candidates {
		key := GroupKey(md.DisplayName())
		if key == "" {
			// Unnamed assets cannot be matched to anything.
			continue
		}
		part, ok := byKey[key]
		if !ok {
			part = &partition{key: key, seen: make(map[immich.AssetID]struct{})}
			byKey[key] = part
			order = append(order, part)
		}
		if _, dup := part.seen[md.ID]; dup {
			continue
		}
		part.seen[md.ID] = struct{}{}
		part.assets = append(part.assets, md)
	}

	var plan Plan
	for _, part := range order {
		if len(part.assets) < 2 {
			// Nothing to stack with.
			continue
		}
		primary, ok := p.selectPrimary(part.assets)
		if !ok {
			plan.Skips = append(plan.Skips, Skip{
				Key:    part.key,
				Reason: SkipSameExtension,
				Assets: part.assets,
			})
			continue
		}
		plan.Requests = append(plan.Requests, Request{
			Key:     part.key,
			Primary: part.assets[primary],
			Assets:  orderedAssets(part.assets, primary),
		})
	}
	return plan
}

// selectPrimary picks the index of the partition's primary asset: the first
// asset carrying a preferred extension, or the first asset overall. It
// reports false when the partition offers no choice at all, i.e. every asset
// shares one extension.
func (p *Planner) selectPrimary(assets []immich.AssetMetadata) (int, bool) {
	first := Ext(assets[0].DisplayName())
	distinct := false
	for _, md := range assets[1:] {
		if Ext(md.DisplayName()) != first {
			distinct = true
			break
		}
	}
	if !distinct {
		return 0, false
	}
	for i, md := range assets {
		if _, ok := p.preferred[Ext(md.DisplayName())]; ok {
			return i, true
		}
	}
	return 0, true
}

// orderedAssets is a helper function to order a partition for submission with
// the primary asset first and the remainder in input order.
func orderedAssets(assets []immich.AssetMetadata, primary int) []immich.AssetMetadata {
	ordered := make([]immich.AssetMetadata, 0, len(assets))
	ordered = append(ordered, assets[primary])
	for i, md := range assets {
		if i != primary {
			ordered = append(ordered, md)
		}
	}
	return ordered
}
