package util

import (
	"flag"
	"os"
	"slices"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

var RequiredFlags = map[*string]string{}

// RequiredFlag(sourcePtr, "--source") registers a flag EnsureFlags checks; "-source" and "source" work too.
func RequiredFlag(flagPointer *string, cliName string) {
	name := normalizeFlagName(cliName)
	RequiredFlags[flagPointer] = name
}
func normalizeFlagName(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "--") {
		return s
	}
	if strings.HasPrefix(s, "-") {
		// single dash → double dash
		return "-" + s
	}
	return "--" + s
}

// EnsureFlags logs every missing required flag, in name order, and exits(1) if any were missing.
func EnsureFlags() {
	missing := missingFlags()
	for _, cliName := range missing {
		tl.Log(tl.Warning, palette.YellowBold, "%s parameter is %s", cliName, "required")
	}
	if len(missing) > 0 {
		os.Exit(1)
	}
}

func missingFlags() (missing []string) {
	for flagPointer, cliName := range RequiredFlags {
		if flagPointer == nil || strings.TrimSpace(*flagPointer) == "" {
			missing = append(missing, cliName)
		}
	}
	slices.Sort(missing)
	return missing
}

// FlagWasSet reports whether the named flag was passed on the command line.
// Call it after flag.Parse.
func FlagWasSet(name string) bool {
	name = strings.TrimLeft(strings.TrimSpace(name), "-")
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
