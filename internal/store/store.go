// Package store provides the dataset key-value store the scheduler reads
// its reference data from. Catalogs and rule sets are addressed by
// logical dataset name, never by file path; the backend decides where a
// dataset actually lives.
package store

import (
	"context"
	"errors"
)

// Dataset names understood by the scheduler.
const (
	DatasetProducts          = "products"
	DatasetProductKeywords   = "product_keywords"
	DatasetHubs              = "hubs"
	DatasetHubRules          = "hub_rules"
	DatasetFinishingRules    = "finishing_rules"
	DatasetImposingRules     = "imposing_rules"
	DatasetPreflightRules    = "preflight_rules"
	DatasetPreflightProfiles = "preflight_profiles"
	DatasetProductionGroups  = "production_groups"
	DatasetPostcodeOverrides = "postcode_overrides"
)

// ErrNotFound is returned when a dataset has never been saved.
var ErrNotFound = errors.New("dataset not found")

// Store is a document store keyed by dataset name. Load unmarshals the
// stored document into out; Save replaces the document wholesale.
// Implementations must provide read-after-write consistency for a single
// dataset but no isolation across datasets.
type Store interface {
	Load(ctx context.Context, dataset string, out any) error
	Save(ctx context.Context, dataset string, doc any) error
}
