package streamcache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"brm/pkg/models"
)

// metadataFileName is the sidecar written once per document directory,
// per the external filesystem layout contract (§6): one sidecar per
// doc_basepath, shared by every detail path underneath it.
const metadataFileName = "metadata.json"

// SaveMetadata writes meta as the JSON sidecar for docBasepath, creating
// the directory if needed. This is the standalone entry point an upload
// pipeline calls once a document's source asset is ready to be derived
// from; Init never calls it — on a miss it only ever reads what's here.
func SaveMetadata(ctx context.Context, backend models.Backend, docBasepath string, meta models.CacheMetadata) error {
	if err := backend.Mkdir(ctx, docBasepath, true); err != nil {
		return fmt.Errorf("streamcache: create document directory: %w", err)
	}
	w, err := backend.OpenWrite(ctx, metaPath(docBasepath))
	if err != nil {
		return fmt.Errorf("streamcache: open metadata for write: %w", err)
	}
	defer w.Close()

	if err := json.NewEncoder(w).Encode(meta); err != nil {
		return fmt.Errorf("streamcache: encode metadata: %w", err)
	}
	return nil
}

// LoadMetadata reads the JSON sidecar for docBasepath. A missing or
// unparseable sidecar is reported as models.ErrMissingMetadata, the
// specific condition admission treats as fatal on a miss.
func LoadMetadata(ctx context.Context, backend models.Backend, docBasepath string) (models.CacheMetadata, error) {
	exists, err := backend.Exists(ctx, metaPath(docBasepath))
	if err != nil {
		return models.CacheMetadata{}, fmt.Errorf("streamcache: stat metadata: %w", err)
	}
	if !exists {
		return models.CacheMetadata{}, models.ErrMissingMetadata
	}

	r, err := backend.OpenRead(ctx, metaPath(docBasepath))
	if err != nil {
		return models.CacheMetadata{}, fmt.Errorf("streamcache: open metadata: %w", err)
	}
	defer r.Close()

	var meta models.CacheMetadata
	if err := json.NewDecoder(r).Decode(&meta); err != nil && err != io.EOF {
		return models.CacheMetadata{}, fmt.Errorf("%w: %v", models.ErrMissingMetadata, err)
	}
	if meta.Empty() || meta.ProcessorKind == "" {
		return models.CacheMetadata{}, models.ErrMissingMetadata
	}
	return meta, nil
}

func metaPath(docBasepath string) string {
	return docBasepath + "/" + metadataFileName
}
