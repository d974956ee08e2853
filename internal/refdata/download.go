package refdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// referenceFiles are the metadata files every deployment needs.
var referenceFiles = []string{
	"ghcnd-stations.txt",
	"ghcnd-countries.txt",
	"ghcnd-states.txt",
	"ghcnd-inventory.txt",
}

// largeReferenceFiles are only fetched when Options.LargeFiles is set.
var largeReferenceFiles = []string{
	"ghcnd_all.tar.gz",
}

// download bulk-populates the data directory from the file mirror.
// Failures here are fatal: without reference data the pipeline cannot
// resolve or enrich anything.
func (d *Dataset) download(ctx context.Context) error {
	if err := os.MkdirAll(d.opts.DataDir, 0o755); err != nil {
		return err
	}

	files := referenceFiles
	if d.opts.LargeFiles {
		files = append(append([]string{}, files...), largeReferenceFiles...)
	}

	for _, name := range files {
		if err := d.fetchFile(ctx, name); err != nil {
			return fmt.Errorf("downloading %s: %w", name, err)
		}
		d.log.Infof("downloaded %s", name)
	}
	return nil
}

func (d *Dataset) fetchFile(ctx context.Context, name string) error {
	url := d.opts.BaseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	dest := filepath.Join(d.opts.DataDir, name)
	tmp, err := os.CreateTemp(d.opts.DataDir, name+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}
