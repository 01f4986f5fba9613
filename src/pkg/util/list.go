package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseList splits a comma- or space-separated flag value, dropping empty items.
func ParseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}

// ParseFloatList parses "-0.3,-0.15 0.15,0.3" into floats.
func ParseFloatList(s string) ([]float64, error) {
	items := ParseList(s)
	values := make([]float64, 0, len(items))
	for _, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", item, err)
		}
		values = append(values, v)
	}
	return values, nil
}
