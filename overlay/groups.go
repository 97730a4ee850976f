package overlay

import "fmt"

// GroupMask assigns each pixel the 1-based ID of the region group it belongs
// to, or 0. groups[i] lists the region IDs that make up group i+1. Groups
// drawn together must not share regions, since a pixel can only show one.
func GroupMask(labels []uint8, groups ...[]int) ([]uint8, error) {
	owner := make(map[uint8]uint8)
	for i, g := range groups {
		if len(g) == 0 {
			return nil, fmt.Errorf("group %d has no regions", i+1)
		}
		for _, r := range g {
			if r < 1 || r > 255 {
				return nil, fmt.Errorf("group %d: region %d is out of range", i+1, r)
			}
			if prev, taken := owner[uint8(r)]; taken {
				return nil, fmt.Errorf("region %d belongs to both group %d and group %d", r, prev, i+1)
			}
			owner[uint8(r)] = uint8(i + 1)
		}
	}

	out := make([]uint8, len(labels))
	for i, l := range labels {
		out[i] = owner[l]
	}

	return out, nil
}
