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
	"passport-augment/src/pkg/util"
)

/*
main applies one perspective skew to every passport image of the selected
countries.

Outputs go to <source>/skewed passport/<country>/:
  - combined:   {base}_combined_h{h}_v{v}.jpg
  - horizontal: {base}_h_skew_{h}.jpg
  - vertical:   {base}_v_skew_{v}.jpg
  - all:        all three of the above
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	defaults := dataset.DefaultValueConfig()
	sourceDir := flag.String("source", "", "Dataset directory with one subdirectory per country.")
	countries := flag.String("countries", "all", "Comma separated country codes, or \"all\".")
	hSkew := flag.Float64("h-skew", defaults.HSkew, "Horizontal skew factor (fraction of height).")
	vSkew := flag.Float64("v-skew", defaults.VSkew, "Vertical skew factor (fraction of width).")
	mode := flag.String("mode", defaults.SkewMode, "Skew mode: combined, horizontal, vertical or all.")
	workers := flag.Int("workers", defaults.Workers, "Number of images processed concurrently.")

	// Parse and initialize config.
	flag.Parse()
	util.RequiredFlag(sourceDir, "source")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	// Flags passed explicitly win over the config file.
	if util.FlagWasSet("h-skew") {
		dataset.Cfg.HSkew = *hSkew
	}
	if util.FlagWasSet("v-skew") {
		dataset.Cfg.VSkew = *vSkew
	}
	if util.FlagWasSet("mode") {
		dataset.Cfg.SkewMode = *mode
	}
	if util.FlagWasSet("workers") {
		dataset.Cfg.Workers = *workers
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s skew entrypoint. Config path: '%s'",
		"Running", *configPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, e := dataset.RunSkew(ctx, dataset.SkewJob{
		SourceDir: *sourceDir,
		Countries: util.ParseList(*countries),
		Mode:      dataset.Cfg.SkewMode,
		HFactor:   dataset.Cfg.HSkew,
		VFactor:   dataset.Cfg.VSkew,
	})
	e.QuitIf(xerr.ErrorTypeError)

	tl.Log(tl.Notice1, palette.GreenBold, "%s. Manifest stored in '%s'", "Skew run completed", report.ManifestPath)
}
