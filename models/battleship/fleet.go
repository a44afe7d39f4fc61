package battleship

// fleetAreaPercent is the share of the map the ships of one fleet cover.
const fleetAreaPercent = 20

// ComputeFleetComposition finds the smallest n for which a fleet of
// 1 ship of size n, 2 ships of size n-1, ..., n ships of size 1 covers
// at least fleetAreaPercent of the map. Such a fleet covers
// n(n+1)(n+2)/6 cells. Sizes are returned largest first.
func ComputeFleetComposition(mapHeight, mapWidth int) (int, []int) {
	mapArea := mapHeight * mapWidth

	n := 1
	for fleetArea(n)*100 < mapArea*fleetAreaPercent {
		n++
	}

	sizes := make([]int, 0, fleetArea(n))
	for size, count := n, 1; size > 0; size, count = size-1, count+1 {
		for i := 0; i < count; i++ {
			sizes = append(sizes, size)
		}
	}
	return n, sizes
}

func fleetArea(n int) int {
	return n * (n + 1) * (n + 2) / 6
}

func NewFleet(sizes []int) []*Ship {
	fleet := make([]*Ship, 0, len(sizes))
	for _, size := range sizes {
		fleet = append(fleet, NewShip(size))
	}
	return fleet
}
