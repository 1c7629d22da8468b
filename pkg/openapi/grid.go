package openapi

import (
	"math"
	"strconv"
	"strings"
)

const gridColumns = 12

var gridBreakpoints = []string{"sm", "md", "lg", "xl", "xxl"}

// gridColumnClass converts an x-formgen grid hint into column classes:
//
//	x-formgen:
//	  grid:
//	    span: 12
//	    breakpoints:
//	      md: {span: 6}
//
// yields "col-12 col-md-6". Spans outside 1..12 are ignored.
func gridColumnClass(ext map[string]any) string {
	grid := extractGridMap(ext)
	if len(grid) == 0 {
		return ""
	}

	var classes []string
	if span, ok := gridSpan(grid["span"]); ok {
		classes = append(classes, "col-"+strconv.Itoa(span))
	}
	if breakpoints := toAnyMap(grid["breakpoints"]); len(breakpoints) > 0 {
		for _, key := range gridBreakpoints {
			entry := toAnyMap(breakpoints[key])
			if span, ok := gridSpan(entry["span"]); ok {
				classes = append(classes, "col-"+key+"-"+strconv.Itoa(span))
			}
		}
	}
	return strings.Join(classes, " ")
}

func extractGridMap(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	if nested := toAnyMap(ext[extensionNamespace]); len(nested) > 0 {
		if grid := toAnyMap(nested["grid"]); len(grid) > 0 {
			return grid
		}
	}
	return toAnyMap(ext[extensionPrefix+"grid"])
}

func gridSpan(value any) (int, bool) {
	span, ok := toIntValue(value)
	if !ok || span <= 0 || span > gridColumns {
		return 0, false
	}
	return span, true
}

func toAnyMap(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	}
	return nil
}

func toIntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}
