package models

// CacheMetadata describes the JSON sidecar file in a document's directory,
// shared by every detail path under it. It is written by
// streamcache.SaveMetadata ahead of any fill; admission only reads it, and
// a miss fails if it is absent.
type CacheMetadata struct {
	// ProcessorKind selects the processor.Registry entry used to fill this
	// entry on a miss (e.g. "hls"). Ignored on a cache hit.
	ProcessorKind string `json:"processor_kind"`

	// UsrID identifies the owning user account.
	UsrID uint32 `json:"usr_id"`

	// UpldReqID identifies the originating upload request that produced
	// the source asset this cache entry derives from.
	UpldReqID uint32 `json:"upld_req_id"`

	// CryptoKeyID names the key used to decrypt the source asset. It is
	// passed through to the processor verbatim; this package never
	// interprets or re-encrypts it.
	CryptoKeyID string `json:"crypto_key_id"`
}

// Empty reports whether m is the zero value, which LoadMetadata returns
// alongside a not-found error rather than a partially populated struct.
func (m CacheMetadata) Empty() bool {
	return m == CacheMetadata{}
}
