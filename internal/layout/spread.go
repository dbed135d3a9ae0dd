package layout

// Spread reassigns RenderLon for the members of one cluster so they sit
// exactly minDist apart, centred on the members' mean position and in the
// order given.
//
// The mean is taken over the members' current RenderLon, which is the
// working coordinate: equal to TrueLon for ordinary clusters and shifted
// by +360 for the rotated half of a seam-crossing cluster.
func Spread(members []*Object, minDist float64) {
	n := len(members)
	if n <= 1 {
		return
	}

	var sum float64
	for _, m := range members {
		sum += m.RenderLon
	}
	centroid := sum / float64(n)

	span := float64(n-1) * minDist
	start := centroid - span/2

	for i, m := range members {
		m.RenderLon = start + float64(i)*minDist
	}
}
