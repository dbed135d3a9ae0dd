package layout

import (
	"cmp"
	"slices"

	"github.com/litescript/ls-wheel/internal/astro"
)

// Cluster is a chain of objects whose consecutive longitude gaps are all
// below the minimum distance. Members index into Layout.Objects and are
// listed in spreading order.
type Cluster struct {
	Members []int `json:"members"`
	// Wraparound marks a cluster that crosses the 0°/360° seam. Its
	// members start with the high-longitude side.
	Wraparound bool `json:"wraparound,omitempty"`
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// sortByLongitude orders objects by true longitude. Ties keep their input
// order, so the layout is reproducible.
func sortByLongitude(objs []Object) {
	slices.SortStableFunc(objs, func(a, b Object) int {
		return cmp.Compare(a.TrueLon, b.TrueLon)
	})
}

// sweep partitions sorted objects into clusters. An object joins the
// current cluster when its gap to the previous object (not the cluster's
// first member) is strictly less than minDist.
func sweep(sorted []Object, minDist float64) []Cluster {
	if len(sorted) == 0 {
		return nil
	}

	clusters := []Cluster{{Members: []int{0}}}
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].TrueLon - sorted[i-1].TrueLon
		if gap < minDist {
			cur := &clusters[len(clusters)-1]
			cur.Members = append(cur.Members, i)
			continue
		}
		clusters = append(clusters, Cluster{Members: []int{i}})
	}
	return clusters
}

// resolve clusters the sorted objects and assigns render longitudes in
// place. It returns the final cluster list.
func resolve(objs []Object, minDist float64) []Cluster {
	clusters := sweep(objs, minDist)

	merged := -1
	if len(clusters) > 1 {
		first := clusters[0]
		last := clusters[len(clusters)-1]

		firstLon := objs[first.Members[0]].TrueLon
		lastLon := objs[last.Members[len(last.Members)-1]].TrueLon
		gap := (firstLon + 360) - lastLon

		if gap < minDist {
			// Rotate the low side above the high side so the seam
			// disappears, then spread as one group.
			for _, idx := range first.Members {
				objs[idx].RenderLon += 360
			}

			combined := make([]int, 0, len(last.Members)+len(first.Members))
			combined = append(combined, last.Members...)
			combined = append(combined, first.Members...)

			Spread(pointers(objs, combined), minDist)
			for _, idx := range combined {
				objs[idx].RenderLon = astro.Normalize360(objs[idx].RenderLon)
			}

			clusters = clusters[1:]
			merged = len(clusters) - 1
			clusters[merged] = Cluster{Members: combined, Wraparound: true}
		}
	}

	for i, c := range clusters {
		if i == merged || c.Size() < 2 {
			continue
		}
		Spread(pointers(objs, c.Members), minDist)
	}

	return clusters
}

func pointers(objs []Object, idx []int) []*Object {
	out := make([]*Object, len(idx))
	for i, j := range idx {
		out[i] = &objs[j]
	}
	return out
}
