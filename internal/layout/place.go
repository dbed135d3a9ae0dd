package layout

// Layout is the result of a placement run.
type Layout struct {
	// Objects holds the visible objects in ascending TrueLon order with
	// RenderLon assigned.
	Objects []Object `json:"objects"`

	// Clusters partitions Objects. Singletons are included.
	Clusters []Cluster `json:"clusters"`

	// Saturated is set when the visible objects cannot all fit around the
	// circle at the configured spacing. Spreading still runs unclamped, so
	// neighbouring clusters may overlap after wrapping.
	Saturated bool `json:"saturated,omitempty"`
}

// Place returns the visible objects with render longitudes assigned,
// ordered by true longitude. Invisible objects are left out. The input
// slice is not modified.
//
// cfg.MinAngularDistance must be positive; the result is unspecified
// otherwise.
func Place(objects []Object, cfg Config) []Object {
	return Plan(objects, cfg).Objects
}

// Plan is Place plus the cluster structure of the result.
func Plan(objects []Object, cfg Config) Layout {
	visible := make([]Object, 0, len(objects))
	for _, o := range objects {
		if !o.Visible {
			continue
		}
		o.RenderLon = o.TrueLon
		visible = append(visible, o)
	}

	if len(visible) == 0 {
		return Layout{Objects: []Object{}}
	}

	minDist := cfg.MinAngularDistance
	sortByLongitude(visible)
	clusters := resolve(visible, minDist)

	return Layout{
		Objects:   visible,
		Clusters:  clusters,
		Saturated: float64(len(visible))*minDist > 360,
	}
}

// ClusterOf returns the index into l.Clusters of the cluster holding the
// object at index i, or -1.
func (l Layout) ClusterOf(i int) int {
	for ci, c := range l.Clusters {
		for _, m := range c.Members {
			if m == i {
				return ci
			}
		}
	}
	return -1
}

// Find returns the placed object with the given ID.
func (l Layout) Find(id string) (Object, bool) {
	for _, o := range l.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}
