package commands

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"brm/internal/storage"
	"brm/internal/streamcache"
)

var (
	inspectDoc    string
	inspectDetail string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report cache hit/miss, artifact size, metadata, and lock status",
	Long: `inspect never admits an entry or acquires the advisory lock for the
lifetime of the call: it takes a non-blocking TryLock purely to probe
whether a fill is in progress, releasing it immediately, so running
inspect never interferes with a concurrent warm or live request.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDoc, "doc", "", "Document basepath (required)")
	inspectCmd.Flags().StringVar(&inspectDetail, "detail", "", "Detail path within the document (required)")
	_ = inspectCmd.MarkFlagRequired("doc")
	_ = inspectCmd.MarkFlagRequired("detail")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	backend, err := storage.NewLocalFS("mediacachectl", storageRoot)
	if err != nil {
		return fmt.Errorf("open storage root: %w", err)
	}

	detailPath := inspectDoc + "/" + inspectDetail
	exists, err := backend.Exists(ctx, detailPath)
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}

	if exists {
		size, err := backend.TypeSize(ctx, detailPath)
		if err != nil {
			return fmt.Errorf("size artifact: %w", err)
		}
		cmd.Printf("artifact: present, %d byte(s)\n", size)
	} else {
		cmd.Println("artifact: absent (cache miss)")
	}

	meta, err := streamcache.LoadMetadata(ctx, backend, inspectDoc)
	if err != nil {
		cmd.Printf("metadata: unavailable (%v)\n", err)
	} else {
		cmd.Printf("metadata: processor_kind=%s usr_id=%d upld_req_id=%d crypto_key_id=%s\n",
			meta.ProcessorKind, meta.UsrID, meta.UpldReqID, meta.CryptoKeyID)
	}

	lockPath := backend.LockPath(detailPath)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		cmd.Printf("lock: error probing (%v)\n", err)
	} else if locked {
		cmd.Println("lock: free")
		_ = fl.Unlock()
	} else {
		cmd.Println("lock: contended (fill in progress)")
	}

	return nil
}
