/*
Package config loads the JSON configuration file shared by every entrypoint
and hands each package its own section.
*/
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"passport-augment/src/pkg/dataset"
)

// File is the layout of ./cfg/config.json. Missing sections keep their package defaults.
type File struct {
	Dataset *dataset.Config `json:"dataset,omitempty"`
}

/*
CheckIfEnvVarsPresent logs every missing environment variable and exits(1)
if any were missing.
*/
func CheckIfEnvVarsPresent(names ...string) {
	missing := missingEnvVars(names...)
	for _, name := range missing {
		tl.Log(tl.Warning, palette.YellowBold, "%s env var is %s", name, "required")
	}
	if len(missing) > 0 {
		os.Exit(1)
	}
}

func missingEnvVars(names ...string) (missing []string) {
	for _, name := range names {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

/*
ReadFile parses the configuration file at path.

A missing file is not an error: an empty File is returned and every package
keeps its defaults.
*/
func ReadFile(path string) (file File, e *xerr.Error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		tl.Log(tl.Warning1, palette.Yellow, "Config file '%s' %s, using %s", path, "not found", "default values")
		return file, nil
	}
	if err != nil {
		e = xerr.NewError(err, "read config file", path)
		return file, e
	}

	err = json.Unmarshal(raw, &file)
	if err != nil {
		e = xerr.NewError(err, "parse config file", path)
		return file, e
	}

	tl.Log(tl.Info, palette.Green, "%s config file '%s'", "Loaded", path)
	return file, nil
}

// InitializeConfig reads the file at path and initializes every package config. Quits on malformed files.
func InitializeConfig(path string) {
	file, e := ReadFile(path)
	e.QuitIf(xerr.ErrorTypeError)

	dataset.InitializeConfig(file.Dataset)
}
