package fractal

// Budget maps the number of discrete zoom steps taken to the per-frame
// iteration ceiling. Deeper zooms need more iterations to resolve
// boundary detail; scaling linearly in the step count keeps frame cost
// bounded. The result is always clamped to [1, limit], including for
// negative step counts.
func Budget(zoomSteps, initial, increment, limit int) int {
	n := zoomSteps*increment + initial
	if limit >= 1 && n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}
