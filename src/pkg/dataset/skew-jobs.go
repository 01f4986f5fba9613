package dataset

import (
	"context"
	"image"
	"math/rand/v2"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"passport-augment/src/pkg/skew"
)

// SkewModeAll writes the combined, horizontal and vertical variants of every image.
const SkewModeAll = "all"

// SkewJob warps every image of the selected countries with one pair of factors.
type SkewJob struct {
	SourceDir string   `json:"source_dir"`
	Countries []string `json:"countries"`
	Mode      string   `json:"mode"`
	HFactor   float64  `json:"h_factor"`
	VFactor   float64  `json:"v_factor"`
}

// SweepJob warps every image once per factor, horizontally and vertically.
type SweepJob struct {
	SourceDir string    `json:"source_dir"`
	OutputDir string    `json:"output_dir"`
	Countries []string  `json:"countries"`
	HFactors  []float64 `json:"h_factors"`
	VFactors  []float64 `json:"v_factors"`
}

/*
RunSkew validates the job, then writes every variant into
<source>/<Cfg.SkewOutputDir>/<country>/ and a manifest into
<source>/<Cfg.SkewOutputDir>/.
*/
func RunSkew(ctx context.Context, job SkewJob) (report Report, e *xerr.Error) {
	mode, e := parseSkewMode(job.Mode)
	if e != nil {
		return report, e
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "Skew mode: '%s', horizontal factor: '%s', vertical factor: '%s'",
		job.Mode, formatFactor(job.HFactor), formatFactor(job.VFactor),
	)

	countries, e := DiscoverCountries(job.SourceDir, job.Countries)
	if e != nil {
		return report, e
	}
	tasks, e := collectTasks(job.SourceDir, countries)
	if e != nil {
		return report, e
	}

	outputRoot := filepath.Join(job.SourceDir, Cfg.SkewOutputDir)
	process := func(t task, img image.Image, _ *rand.Rand) (outputs []string, applied []string, e *xerr.Error) {
		countryDir := filepath.Join(outputRoot, t.country)
		e = ensureOutputDirectory(countryDir)
		if e != nil {
			return nil, nil, e
		}

		variants, err := skewVariants(img, mode, job.HFactor, job.VFactor)
		if err != nil {
			return nil, nil, xerr.NewError(err, "apply "+job.Mode+" skew", t.sourcePath)
		}

		base := baseName(t.sourcePath)
		for _, variant := range variants {
			outputPath := filepath.Join(countryDir, skewFileName(base, variant.Label, variant.Params.HFactor, variant.Params.VFactor))
			e = saveImage(variant.Image, outputPath, Cfg.JPEGQuality)
			if e != nil {
				return outputs, applied, e
			}
			outputs = append(outputs, outputPath)
			applied = append(applied, string(variant.Label))
		}
		return outputs, applied, nil
	}

	return runTasks(ctx, "skew", job, countries, tasks, outputRoot, process)
}

// parseSkewMode validates the job mode. SkewModeAll is returned as the empty Mode.
func parseSkewMode(mode string) (parsed skew.Mode, e *xerr.Error) {
	if mode == SkewModeAll {
		return "", nil
	}
	parsed, err := skew.ParseMode(mode)
	if err != nil {
		e = xerr.NewError(err, "parse skew mode", mode)
		return "", e
	}
	return parsed, nil
}

// skewVariants warps img in one mode, or in every mode when mode is empty.
func skewVariants(img image.Image, mode skew.Mode, hFactor, vFactor float64) ([]skew.Output, error) {
	if mode == "" {
		return skew.ApplyAll(img, hFactor, vFactor)
	}
	params := skew.Params{Mode: mode, HFactor: hFactor, VFactor: vFactor}
	warped, err := skew.Apply(img, params)
	if err != nil {
		return nil, err
	}
	return []skew.Output{{Label: mode, Params: params, Image: warped}}, nil
}

/*
RunSkewSweep writes <out>/<country>_h_skewed/<base>_h_skew_<i>.jpg for every
horizontal factor and the matching _v_ outputs for every vertical factor.
*/
func RunSkewSweep(ctx context.Context, job SweepJob) (report Report, e *xerr.Error) {
	tl.Log(
		tl.Notice, palette.BlueBold, "Sweeping horizontal factors '%v' and vertical factors '%v'",
		job.HFactors, job.VFactors,
	)

	countries, e := DiscoverCountries(job.SourceDir, job.Countries)
	if e != nil {
		return report, e
	}
	tasks, e := collectTasks(job.SourceDir, countries)
	if e != nil {
		return report, e
	}

	sweeps := []struct {
		mode    skew.Mode
		factors []float64
	}{
		{skew.ModeHorizontal, job.HFactors},
		{skew.ModeVertical, job.VFactors},
	}

	process := func(t task, img image.Image, _ *rand.Rand) (outputs []string, applied []string, e *xerr.Error) {
		base := baseName(t.sourcePath)
		for _, sweep := range sweeps {
			if len(sweep.factors) == 0 {
				continue
			}
			dir := filepath.Join(job.OutputDir, sweepDirName(t.country, sweep.mode))
			e = ensureOutputDirectory(dir)
			if e != nil {
				return outputs, applied, e
			}
			for i, factor := range sweep.factors {
				params := skew.Params{Mode: sweep.mode, HFactor: factor, VFactor: factor}
				warped, err := skew.Apply(img, params)
				if err != nil {
					return outputs, applied, xerr.NewError(err, "apply "+string(sweep.mode)+" skew "+formatFactor(factor), t.sourcePath)
				}
				outputPath := filepath.Join(dir, sweepFileName(base, sweep.mode, i+1))
				e = saveImage(warped, outputPath, Cfg.JPEGQuality)
				if e != nil {
					return outputs, applied, e
				}
				outputs = append(outputs, outputPath)
				applied = append(applied, string(sweep.mode)+"/"+formatFactor(factor))
			}
		}
		return outputs, applied, nil
	}

	return runTasks(ctx, "skew-sweep", job, countries, tasks, job.OutputDir, process)
}
