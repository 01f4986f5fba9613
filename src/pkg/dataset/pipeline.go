/*
Package dataset drives the skew and lighting engines over a passport dataset.

The source directory holds one subdirectory per country code, each with the
document images of that country. Every run discovers the requested countries,
processes their images concurrently, saves the augmented variants next to the
source tree and writes a JSON manifest describing the run.
*/
package dataset

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"golang.org/x/sync/errgroup"
)

// task is one source image scheduled for processing.
type task struct {
	index      int
	country    string
	sourcePath string
}

// ImageResult is the per-image outcome recorded in the report.
type ImageResult struct {
	Country string   `json:"country"`
	Source  string   `json:"source"`
	Outputs []string `json:"outputs,omitempty"`
	Applied []string `json:"applied,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Failed reports whether the image could not be processed.
func (r ImageResult) Failed() bool {
	return r.Error != ""
}

// Report summarises a batch run. It is also the manifest's JSON layout.
type Report struct {
	RunID        string        `json:"run_id"`
	Kind         string        `json:"kind"`
	Seed         uint64        `json:"seed"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Job          any           `json:"job"`
	Countries    []string      `json:"countries"`
	Processed    int           `json:"processed"`
	Failed       int           `json:"failed"`
	Results      []ImageResult `json:"results"`
	ManifestPath string        `json:"-"`
}

/*
processFunc turns one decoded image into saved outputs. It must only write
files under outputs it reports, and it receives a generator private to the
image.
*/
type processFunc func(t task, img image.Image, rnd *rand.Rand) (outputs []string, applied []string, e *xerr.Error)

// runSeed resolves the configured seed, falling back to the clock.
func runSeed() uint64 {
	if Cfg.Seed != 0 {
		return Cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

/*
imageSource derives the generator of the index-th image from the run seed, so
the same seed reproduces every image no matter how workers are scheduled.
*/
func imageSource(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// collectTasks lists the images of every country in order.
func collectTasks(sourceDir string, countries []string) (tasks []task, e *xerr.Error) {
	for _, country := range countries {
		images, listErr := ListImages(filepath.Join(sourceDir, country))
		if listErr != nil {
			return nil, listErr
		}
		for _, imagePath := range images {
			tasks = append(tasks, task{index: len(tasks), country: country, sourcePath: imagePath})
		}
	}
	return tasks, nil
}

/*
runTasks processes every task on a bounded worker pool. A failing image is
logged and recorded, never aborting the batch; only context cancellation stops
the run early. The manifest is written to manifestDir.
*/
func runTasks(ctx context.Context, kind string, job any, countries []string, tasks []task, manifestDir string, process processFunc) (report Report, e *xerr.Error) {
	report = Report{
		RunID:     uuid.NewString(),
		Kind:      kind,
		Seed:      runSeed(),
		StartedAt: time.Now(),
		Job:       job,
		Countries: countries,
		Results:   make([]ImageResult, len(tasks)),
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s %s run '%s' over %s in %s",
		"Starting", kind, report.RunID, describeCount(len(tasks), "image"), describeCount(len(countries), "country"),
	)

	workers := max(Cfg.Workers, 1)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, t := range tasks {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			report.Results[t.index] = processTask(t, imageSource(report.Seed, t.index), process)
			return nil
		})
	}

	waitErr := group.Wait()
	report.FinishedAt = time.Now()
	for _, result := range report.Results {
		switch {
		case result.Failed():
			report.Failed++
		case result.Source != "":
			report.Processed++
		}
	}

	if manifestDir != "" {
		report.ManifestPath, e = WriteManifest(report, manifestDir)
		if e != nil {
			return report, e
		}
	}

	if waitErr != nil {
		e = xerr.NewError(waitErr, "batch run interrupted", report.RunID)
		return report, e
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "Done. Processed: '%d', failed: '%d', took '%s'",
		report.Processed, report.Failed, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)

	return report, nil
}

// processTask runs process on one image and converts failures into a result.
func processTask(t task, rnd *rand.Rand, process processFunc) (result ImageResult) {
	result = ImageResult{Country: t.country, Source: t.sourcePath}

	tl.Log(tl.Info, palette.Blue, "%s '%s'", "Processing image", t.sourcePath)

	img, e := openImage(t.sourcePath)
	if e == nil {
		result.Outputs, result.Applied, e = process(t, img, rnd)
	}
	if e != nil {
		result.Error = fmt.Sprint(e)
		tl.Log(
			tl.Error, palette.RedBold, "Failed processing '%s': '%s'",
			t.sourcePath, e,
		)
		return result
	}

	tl.Log(
		tl.Info1, palette.Green, "Created %s from '%s'",
		describeCount(len(result.Outputs), "variant"), t.sourcePath,
	)
	return result
}

// WriteManifest stores report as manifest-<runID>.json in dir and returns its path.
func WriteManifest(report Report, dir string) (manifestPath string, e *xerr.Error) {
	e = ensureOutputDirectory(dir)
	if e != nil {
		return "", e
	}
	manifestPath = filepath.Join(dir, fmt.Sprintf("manifest-%s.json", report.RunID))
	e = saveJSONToFile(manifestPath, report)
	if e != nil {
		return "", e
	}
	return manifestPath, nil
}
