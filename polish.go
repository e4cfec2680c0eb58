package svgps

// Polish discards sub-paths whose approximate arc length is below
// minLength. Occlusion cutting can leave slivers that are not worth
// plotting; polishing removes them. It is a pure filter: surviving
// sub-paths keep their geometry untouched. A minLength of 0 (or less)
// keeps everything.
func Polish(subpaths []*Path, minLength float64) []*Path {
	if minLength <= 0 {
		return subpaths
	}

	kept := subpaths[:0:0]
	for _, sp := range subpaths {
		if sp.Length() >= minLength {
			kept = append(kept, sp)
			continue
		}
		Logger().Debug("polished away sub-path", "length", sp.Length(), "min", minLength)
	}
	return kept
}
