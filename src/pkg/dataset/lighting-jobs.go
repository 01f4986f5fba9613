package dataset

import (
	"context"
	"image"
	"math/rand/v2"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"passport-augment/src/pkg/lighting"
)

// LightingJob applies one lighting effect spec to every image of the selected countries.
type LightingJob struct {
	SourceDir string              `json:"source_dir"`
	Countries []string            `json:"countries"`
	Spec      lighting.EffectSpec `json:"spec"`
}

/*
RunLighting validates the spec, then writes every output into
<source>/<Cfg.LightingOutputDir>/<country>/ and a manifest into
<source>/<Cfg.LightingOutputDir>/. Each image draws its random placement
from its own seeded generator.
*/
func RunLighting(ctx context.Context, job LightingJob) (report Report, e *xerr.Error) {
	err := job.Spec.Validate()
	if err != nil {
		e = xerr.NewError(err, "validate lighting effect spec", string(job.Spec.Effect))
		return report, e
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "Effect type: '%s', glare: '%s' x%d, shadow: '%s' x%d, lighting: '%s'",
		job.Spec.Effect,
		formatFactor(job.Spec.GlareIntensity), job.Spec.NumGlares,
		formatFactor(job.Spec.ShadowIntensity), job.Spec.NumShadows,
		formatFactor(job.Spec.LightingIntensity),
	)

	countries, e := DiscoverCountries(job.SourceDir, job.Countries)
	if e != nil {
		return report, e
	}
	tasks, e := collectTasks(job.SourceDir, countries)
	if e != nil {
		return report, e
	}

	outputRoot := filepath.Join(job.SourceDir, Cfg.LightingOutputDir)
	process := func(t task, img image.Image, rnd *rand.Rand) (outputs []string, applied []string, e *xerr.Error) {
		countryDir := filepath.Join(outputRoot, t.country)
		e = ensureOutputDirectory(countryDir)
		if e != nil {
			return nil, nil, e
		}

		results, err := lighting.Apply(img, job.Spec, rnd)
		if err != nil {
			return nil, nil, xerr.NewError(err, "apply lighting effect "+string(job.Spec.Effect), t.sourcePath)
		}

		base := baseName(t.sourcePath)
		for _, result := range results {
			outputPath := filepath.Join(countryDir, lightingFileName(base, job.Spec, result.Label))
			e = saveImage(result.Image, outputPath, Cfg.JPEGQuality)
			if e != nil {
				return outputs, applied, e
			}
			outputs = append(outputs, outputPath)
			applied = append(applied, result.Applied...)
		}
		return outputs, applied, nil
	}

	return runTasks(ctx, "lighting", job, countries, tasks, outputRoot, process)
}
