package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"brm/internal/processor"
	"brm/internal/storage"
	"brm/internal/streamcache"
)

var (
	warmDoc    string
	warmDetail string
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Admit a cache entry and drain it to completion",
	Long: `warm calls streamcache.Init for the given document/detail pair and,
on a miss, drives ProceedDataBlock to completion so the artifact is fully
produced and persisted before any HTTP request asks for it. On a hit it
reports the entry was already cached and does nothing further.`,
	RunE: runWarm,
}

func init() {
	warmCmd.Flags().StringVar(&warmDoc, "doc", "", "Document basepath (required)")
	warmCmd.Flags().StringVar(&warmDetail, "detail", "", "Detail path within the document (required)")
	_ = warmCmd.MarkFlagRequired("doc")
	_ = warmCmd.MarkFlagRequired("detail")
}

func runWarm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	backend, err := storage.NewLocalFS("mediacachectl", storageRoot)
	if err != nil {
		return fmt.Errorf("open storage root: %w", err)
	}
	metrics := streamcache.NewMetrics(nil)
	manager := streamcache.NewManager(backend, processor.Default(), metrics)

	spec := streamcache.Spec{DocBasepath: warmDoc, DetailPath: warmDetail}
	entry, err := manager.Init(ctx, spec, streamcache.Hooks{})
	if err != nil {
		if entry != nil {
			_ = entry.Deinit()
		}
		return fmt.Errorf("admission failed: %w", err)
	}
	defer entry.Deinit()

	if entry.Mode == streamcache.ServeFromCache {
		cmd.Println("already cached, nothing to warm")
		return nil
	}

	var totalBytes int
	var blocks int
	for {
		block, err := entry.ProceedDataBlock(ctx, metrics)
		if err != nil {
			return fmt.Errorf("proceed failed after %d block(s): %w", blocks, err)
		}
		blocks++
		totalBytes += len(block.Data)
		if block.IsFinal {
			break
		}
	}

	cmd.Printf("warmed %s/%s: %d block(s), %d byte(s)\n", warmDoc, warmDetail, blocks, totalBytes)
	return nil
}
