// Package export writes stopwatch snapshots to disk.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
	"golang.org/x/sync/errgroup"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
	FormatHTML = "html"

	baseName = "stopwatch"
)

// Formats returns the supported export formats.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatXLSX, FormatHTML}
}

type Options struct {
	Formats []string
	// Compress writes the json and yaml outputs with xz.
	Compress bool
}

type writerFunc func(path string, sw *stopwatch.Stopwatch, s *summary.Summary) error

var writers = map[string]writerFunc{
	FormatJSON: saveJSON,
	FormatYAML: saveYAML,
	FormatXLSX: saveSheet,
	FormatHTML: saveChartPage,
}

func compressible(format string) bool {
	return format == FormatJSON || format == FormatYAML
}

// Export writes the stopwatch in every requested format into dir and returns
// the created files, sorted. Unknown formats are rejected before writing.
func Export(dir string, sw *stopwatch.Stopwatch, opts Options) ([]string, error) {
	if len(opts.Formats) == 0 {
		return nil, fmt.Errorf("no export format requested")
	}
	for _, f := range opts.Formats {
		if _, ok := writers[f]; !ok {
			return nil, fmt.Errorf("unsupported export format %q, valid formats: %v", f, Formats())
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create directory %s", dir)
	}

	s := summary.NewSummary(sw)
	eg := &errgroup.Group{}
	mu := sync.Mutex{}
	files := []string{}
	seen := map[string]struct{}{}

	for _, format := range opts.Formats {
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}

		path := filepath.Join(dir, fmt.Sprintf("%s.%s", baseName, format))
		if opts.Compress && compressible(format) {
			path += ".xz"
		}
		write := writers[format]
		eg.Go(func() error {
			log.Debugf("Export: writing %s", path)
			if err := write(path, sw, s); err != nil {
				return errors.Wrapf(err, "unable to write %s", path)
			}
			mu.Lock()
			files = append(files, path)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// createFile opens path for writing, compressing with xz when the path has
// the .xz extension. The returned closer flushes and closes everything.
func createFile(path string) (io.Writer, func() error, error) {
	fd, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if filepath.Ext(path) != ".xz" {
		return fd, fd.Close, nil
	}
	xw, err := xz.NewWriter(fd)
	if err != nil {
		fd.Close()
		return nil, nil, err
	}
	return xw, func() error {
		if err := xw.Close(); err != nil {
			fd.Close()
			return err
		}
		return fd.Close()
	}, nil
}
