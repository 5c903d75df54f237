package wps

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// GetItemImages fetches and normalizes the image set for one item.
func (c *Client) GetItemImages(ctx context.Context, itemID string) ([]string, error) {
	var env envelope[[]rawImage]
	endpoint := "/items/" + url.PathEscape(itemID) + "/images"
	if err := c.get(ctx, "item_images", endpoint, nil, &env); err != nil {
		return nil, err
	}
	return normalizeImages(env.Data), nil
}

// enrichImages fans out one image fetch per item with bounded concurrency.
// Each fetch is independently fault-tolerant: a failure yields an empty
// image list for that item only. Failures are aggregated and logged once.
func (c *Client) enrichImages(ctx context.Context, items []rawItem) [][]string {
	results := make([][]string, len(items))
	if len(items) == 0 {
		return results
	}

	limit := c.cfg.ImageConcurrency
	if limit <= 0 {
		limit = 1
	}

	var (
		mu       sync.Mutex
		failures error
	)
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			id := item.ID.String()
			if id == "" {
				results[i] = []string{}
				return nil
			}
			urls, err := c.GetItemImages(ctx, id)
			if err != nil {
				mu.Lock()
				failures = multierr.Append(failures, fmt.Errorf("item %s: %w", id, err))
				mu.Unlock()
				results[i] = []string{}
				return nil
			}
			results[i] = urls
			return nil
		})
	}
	g.Wait()

	if failures != nil {
		lctx := c.logger.WithFields(ctx, map[string]any{
			"failed": len(multierr.Errors(failures)),
			"total":  len(items),
		})
		c.logger.Warn(lctx, "image enrichment partially failed: "+failures.Error())
	}
	return results
}
