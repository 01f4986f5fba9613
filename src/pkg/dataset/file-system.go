package dataset

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
ensureOutputDirectory creates the target directory (and parents) if needed.

It uses os.MkdirAll and returns a *xerr.Error if creation fails.
*/
func ensureOutputDirectory(outputDirPath string) (e *xerr.Error) {
	err := os.MkdirAll(outputDirPath, 0o755)
	if err != nil {
		e = xerr.NewError(err, "create output directory", outputDirPath)
		return e
	}

	tl.Log(
		tl.Verbose, palette.BlueDim, "Ensured output directory '%s'",
		outputDirPath,
	)

	return e
}

/*
openImage decodes the image at sourcePath. EXIF orientation is applied so
phone photos of documents are warped the way they are displayed.
*/
func openImage(sourcePath string) (img image.Image, e *xerr.Error) {
	img, openErr := imaging.Open(sourcePath, imaging.AutoOrientation(true))
	if openErr != nil {
		e = xerr.NewError(openErr, "open source image", sourcePath)
		return nil, e
	}
	return img, nil
}

/*
saveImage writes img to destinationPath. The format follows the extension;
JPEG output uses the configured quality.
*/
func saveImage(img image.Image, destinationPath string, jpegQuality int) (e *xerr.Error) {
	saveErr := imaging.Save(img, destinationPath, imaging.JPEGQuality(jpegQuality))
	if saveErr != nil {
		e = xerr.NewError(saveErr, "save augmented image", destinationPath)
		return e
	}

	tl.Log(
		tl.Verbose, palette.GreenDim, "Saved augmented image to '%s'",
		destinationPath,
	)

	return e
}

/*
saveJSONToFile marshals the given value to pretty-printed JSON and writes it
to a .json file at the given path.

It overwrites any existing file at that location. If marshalling or writing
fails, it returns a *xerr.Error.
*/
func saveJSONToFile(destinationPath string, value any) (e *xerr.Error) {
	jsonBytes, marshalErr := json.MarshalIndent(value, "", "  ")
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal value to JSON", destinationPath)
		return e
	}

	writeErr := os.WriteFile(destinationPath, jsonBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write JSON file", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved JSON data to '%s'",
		destinationPath,
	)

	return e
}

/*
DiscoverCountries lists the country directories under sourceDir.

Directories named in Cfg.ExcludedDirs (previous outputs) are never treated as
countries. When requested is empty or ["all"], every country is returned;
otherwise unknown requested countries are logged and dropped. The result is
sorted.
*/
func DiscoverCountries(sourceDir string, requested []string) (countries []string, e *xerr.Error) {
	entries, readErr := os.ReadDir(sourceDir)
	if readErr != nil {
		e = xerr.NewError(readErr, "read source directory", sourceDir)
		return nil, e
	}

	available := make([]string, 0, len(entries))
	for _, ent := range entries {
		if !ent.IsDir() || slices.Contains(Cfg.ExcludedDirs, ent.Name()) {
			continue
		}
		available = append(available, ent.Name())
	}
	sort.Strings(available)

	tl.Log(tl.Info, palette.Cyan, "Available countries: '%s'", strings.Join(available, ", "))

	if len(requested) == 0 || (len(requested) == 1 && strings.EqualFold(requested[0], "all")) {
		return available, nil
	}

	var missing []string
	for _, country := range requested {
		if slices.Contains(available, country) {
			if !slices.Contains(countries, country) {
				countries = append(countries, country)
			}
			continue
		}
		missing = append(missing, country)
	}
	if len(missing) > 0 {
		tl.Log(
			tl.Warning, palette.YellowBold, "These countries were %s: '%s'",
			"not found", strings.Join(missing, ", "),
		)
	}

	sort.Strings(countries)
	return countries, nil
}

/*
ListImages returns the .jpg/.jpeg/.png files directly inside dirPath, sorted.
*/
func ListImages(dirPath string) (images []string, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read directory", dirPath)
		return
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if !isAllowedImageExt(filepath.Ext(ent.Name())) {
			continue
		}
		images = append(images, filepath.Join(dirPath, ent.Name()))
	}

	sort.Strings(images)
	return
}

func isAllowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// baseName returns the file name without directory and extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// describeCount renders counts for log lines.
func describeCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
