package dnd

// Detect picks the region a drag is hovering.
//
// The first tier collects every region whose bounds contain the pointer,
// skipping the region of the dragged item itself so it never targets itself.
// Among those the smallest region wins, so an element beats the page
// container it sits in; equal areas keep declaration order.
//
// When the pointer is outside every region (fast drags, or no pointer at all
// for keyboard drags) the second tier falls back to the region whose centre
// is closest to the centre of the dragged rectangle.
func Detect(regions []Region, pointer *Point, dragged Rect, activeID string) (Region, bool) {
	if region, ok := pointerWithin(regions, pointer, activeID); ok {
		return region, true
	}
	return closestCenter(regions, dragged, activeID)
}

func pointerWithin(regions []Region, pointer *Point, activeID string) (Region, bool) {
	if pointer == nil {
		return Region{}, false
	}
	var (
		best  Region
		found bool
	)
	for _, region := range regions {
		if isActive(region, activeID) || !region.Rect.Contains(*pointer) {
			continue
		}
		if !found || region.Rect.Area() < best.Rect.Area() {
			best = region
			found = true
		}
	}
	return best, found
}

func closestCenter(regions []Region, dragged Rect, activeID string) (Region, bool) {
	center := dragged.Center()
	var (
		best     Region
		bestDist float64
		found    bool
	)
	for _, region := range regions {
		if isActive(region, activeID) {
			continue
		}
		dist := region.Rect.Center().Distance(center)
		if !found || dist < bestDist {
			best = region
			bestDist = dist
			found = true
		}
	}
	return best, found
}

func isActive(region Region, activeID string) bool {
	if activeID == "" {
		return false
	}
	return region.ID == activeID || (region.Kind == RegionElement && region.Element == activeID)
}
