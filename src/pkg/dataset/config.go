package dataset

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"passport-augment/src/pkg/lighting"
	"passport-augment/src/pkg/util"
)

/*
Config is the "dataset" section of the configuration file.

Zero values count as missing and are replaced by DefaultValueConfig in
InitializeConfig, so "glare_intensity": 0 or "num_shadows": 0 fall back to
the defaults. Use a negative count to switch glare spots or shadows off, or
pick a different effect.
*/
type Config struct {
	Workers     int    `json:"workers,omitempty"`
	Seed        uint64 `json:"seed,omitempty"`
	JPEGQuality int    `json:"jpeg_quality,omitempty"`

	ExcludedDirs      []string `json:"excluded_dirs,omitempty"`
	SkewOutputDir     string   `json:"skew_output_dir,omitempty"`
	LightingOutputDir string   `json:"lighting_output_dir,omitempty"`

	HSkew         float64   `json:"h_skew,omitempty"`
	VSkew         float64   `json:"v_skew,omitempty"`
	SkewMode      string    `json:"skew_mode,omitempty"`
	SweepHFactors []float64 `json:"sweep_h_factors,omitempty"`
	SweepVFactors []float64 `json:"sweep_v_factors,omitempty"`

	Effect            string  `json:"effect,omitempty"`
	GlareIntensity    float64 `json:"glare_intensity,omitempty"`
	ShadowIntensity   float64 `json:"shadow_intensity,omitempty"`
	LightingIntensity float64 `json:"lighting_intensity,omitempty"`
	NumGlares         int     `json:"num_glares,omitempty"`
	NumShadows        int     `json:"num_shadows,omitempty"`
}

func DefaultValueConfig() Config {
	spec := lighting.DefaultEffectSpec()
	return Config{
		Workers:     4,
		Seed:        0,
		JPEGQuality: 95,

		ExcludedDirs:      []string{"results", "skewed passport", "lighting effects"},
		SkewOutputDir:     "skewed passport",
		LightingOutputDir: "lighting effects",

		HSkew:         0.2,
		VSkew:         0.2,
		SkewMode:      "combined",
		SweepHFactors: []float64{-0.3, -0.15, 0.15, 0.3},
		SweepVFactors: []float64{-0.3, -0.15, 0.15, 0.3},

		Effect:            string(spec.Effect),
		GlareIntensity:    spec.GlareIntensity,
		ShadowIntensity:   spec.ShadowIntensity,
		LightingIntensity: spec.LightingIntensity,
		NumGlares:         spec.NumGlares,
		NumShadows:        spec.NumShadows,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) {
	// If not provided - just use defaultConfig
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "dataset", "not provided", "default dataset config")
		return
	}

	defaultConfig := DefaultValueConfig() // Default values to replace some values with during config initialization

	// If local Config is provided - use it
	Cfg = *localConfig

	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", util.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "dataset", "provided", "local dataset config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", util.GetPackageName()), Cfg)
}

// EffectSpec builds the lighting spec from the current configuration.
func (c Config) EffectSpec() lighting.EffectSpec {
	return lighting.EffectSpec{
		Effect:            lighting.Effect(c.Effect),
		GlareIntensity:    c.GlareIntensity,
		ShadowIntensity:   c.ShadowIntensity,
		LightingIntensity: c.LightingIntensity,
		NumGlares:         c.NumGlares,
		NumShadows:        c.NumShadows,
	}
}
