package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"passport-augment/src/pkg/config"
	"passport-augment/src/pkg/dataset"
	"passport-augment/src/pkg/lighting"
	"passport-augment/src/pkg/util"
)

/*
main applies synthetic lighting effects to every passport image of the
selected countries.

Effects: glare, shadow, uneven_light, combined (random mix) or all (glare,
shadow and every lighting kind as separate outputs). Outputs go to
<source>/lighting effects/<country>/. Pass --seed to reproduce a run.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	defaults := dataset.DefaultValueConfig()
	sourceDir := flag.String("source", "", "Dataset directory with one subdirectory per country.")
	countries := flag.String("countries", "all", "Comma separated country codes, or \"all\".")
	effect := flag.String("effect", defaults.Effect, "Effect type: glare, shadow, uneven_light, combined or all.")
	glareIntensity := flag.Float64("glare-intensity", defaults.GlareIntensity, "Glare intensity (0-1).")
	shadowIntensity := flag.Float64("shadow-intensity", defaults.ShadowIntensity, "Shadow intensity (0-1).")
	lightingIntensity := flag.Float64("lighting-intensity", defaults.LightingIntensity, "Uneven lighting intensity (0-1).")
	numGlares := flag.Int("num-glares", defaults.NumGlares, "Number of glare spots.")
	numShadows := flag.Int("num-shadows", defaults.NumShadows, "Number of shadows.")
	lightingKind := flag.String("lighting-kind", "", "Fix the uneven_light kind: gradient, spotlight or vignette. Random when empty.")
	seed := flag.Uint64("seed", defaults.Seed, "Random seed. 0 seeds from the clock.")
	workers := flag.Int("workers", defaults.Workers, "Number of images processed concurrently.")

	// Parse and initialize config.
	flag.Parse()
	util.RequiredFlag(sourceDir, "source")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	// Flags passed explicitly win over the config file.
	if util.FlagWasSet("effect") {
		dataset.Cfg.Effect = *effect
	}
	if util.FlagWasSet("glare-intensity") {
		dataset.Cfg.GlareIntensity = *glareIntensity
	}
	if util.FlagWasSet("shadow-intensity") {
		dataset.Cfg.ShadowIntensity = *shadowIntensity
	}
	if util.FlagWasSet("lighting-intensity") {
		dataset.Cfg.LightingIntensity = *lightingIntensity
	}
	if util.FlagWasSet("num-glares") {
		dataset.Cfg.NumGlares = *numGlares
	}
	if util.FlagWasSet("num-shadows") {
		dataset.Cfg.NumShadows = *numShadows
	}
	if util.FlagWasSet("seed") {
		dataset.Cfg.Seed = *seed
	}
	if util.FlagWasSet("workers") {
		dataset.Cfg.Workers = *workers
	}

	spec := dataset.Cfg.EffectSpec()
	spec.LightingKind = lighting.Kind(*lightingKind)

	tl.Log(
		tl.Notice, palette.BlueBold, "%s lighting entrypoint. Config path: '%s'",
		"Running", *configPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, e := dataset.RunLighting(ctx, dataset.LightingJob{
		SourceDir: *sourceDir,
		Countries: util.ParseList(*countries),
		Spec:      spec,
	})
	e.QuitIf(xerr.ErrorTypeError)

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s with seed '%d'. Manifest stored in '%s'",
		"Lighting run completed", report.Seed, report.ManifestPath,
	)
}
