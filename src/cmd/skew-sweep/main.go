package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"passport-augment/src/pkg/config"
	"passport-augment/src/pkg/dataset"
	"passport-augment/src/pkg/util"
)

// parseFactors quits when a factor list is malformed.
func parseFactors(raw string, flagName string) []float64 {
	factors, err := util.ParseFloatList(raw)
	xerr.QuitIfError(err, fmt.Sprintf("Unable to parse --%s '%s'", flagName, raw))
	return factors
}

/*
main warps every image once per factor: horizontally into <out>/<country>_h_skewed/
and vertically into <out>/<country>_v_skewed/. Outputs are numbered by the
factor's position in its list.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	defaults := dataset.DefaultValueConfig()
	sourceDir := flag.String("source", "", "Dataset directory with one subdirectory per country.")
	outputDirPath := flag.String("out", "./results", "Directory where the skewed variants are stored.")
	countries := flag.String("countries", "all", "Comma separated country codes, or \"all\".")
	hFactors := flag.String("h-factors", strings.Trim(fmt.Sprint(defaults.SweepHFactors), "[]"), "Comma or space separated horizontal skew factors.")
	vFactors := flag.String("v-factors", strings.Trim(fmt.Sprint(defaults.SweepVFactors), "[]"), "Comma or space separated vertical skew factors.")
	workers := flag.Int("workers", defaults.Workers, "Number of images processed concurrently.")

	// Parse and initialize config.
	flag.Parse()
	util.RequiredFlag(sourceDir, "source")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	if util.FlagWasSet("h-factors") {
		dataset.Cfg.SweepHFactors = parseFactors(*hFactors, "h-factors")
	}
	if util.FlagWasSet("v-factors") {
		dataset.Cfg.SweepVFactors = parseFactors(*vFactors, "v-factors")
	}
	if util.FlagWasSet("workers") {
		dataset.Cfg.Workers = *workers
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s skew sweep entrypoint. Config path: '%s'",
		"Running", *configPath,
	)
	tl.Log(
		tl.Info1, palette.Cyan, "%s '%s'",
		"Using output directory", *outputDirPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, e := dataset.RunSkewSweep(ctx, dataset.SweepJob{
		SourceDir: *sourceDir,
		OutputDir: *outputDirPath,
		Countries: util.ParseList(*countries),
		HFactors:  dataset.Cfg.SweepHFactors,
		VFactors:  dataset.Cfg.SweepVFactors,
	})
	e.QuitIf(xerr.ErrorTypeError)

	tl.Log(tl.Notice1, palette.GreenBold, "%s. Manifest stored in '%s'", "Skew sweep completed", report.ManifestPath)
}
