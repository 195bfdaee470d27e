package streamcache

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Spec is the admission request: the key identifying which artifact to
// look up or fill. Everything needed to actually fill a miss (processor
// kind, owning user, crypto key) lives in the metadata sidecar, written
// ahead of time by whatever upload pipeline populated the document —
// Init only ever reads it, never invents it from the request.
type Spec struct {
	// DocBasepath is the cached document's root directory, pre-created at
	// upload time, where the metadata sidecar also lives. Required.
	DocBasepath string `validate:"required"`

	// DetailPath identifies the specific rendition/segment within the
	// document (the spec's detail_element, taken from the streaming
	// request's path). Required.
	DetailPath string `validate:"required"`
}

// Validate checks the struct tags above.
func (s Spec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("streamcache: invalid spec: %w", err)
	}
	return nil
}

// detailFullPath joins DocBasepath and DetailPath the way every backend
// operation in this package addresses a cache entry's artifact.
func (s Spec) detailFullPath() string {
	return s.DocBasepath + "/" + s.DetailPath
}
