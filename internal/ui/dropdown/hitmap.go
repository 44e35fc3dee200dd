package dropdown

// Mouse region identifiers
const (
	regionContainer = "container" // Whole closed box
	regionBadge     = "badge"     // Selected option badge (Data: index into Selected())
	regionClear     = "clear"     // Clear button
	regionOption    = "option"    // Option row (Data: option index)
)

// Rect is a rectangle in cells. W and H are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x, y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable area of the rendered dropdown
type Region struct {
	ID   string
	Rect Rect
	Data interface{}
}

// HitMap resolves cell coordinates to the region drawn there.
// Regions added later take priority over earlier overlapping ones.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Clear removes all regions
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// AddRect registers a region
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data interface{}) {
	h.regions = append(h.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: hgt},
		Data: data,
	})
}

// Test returns the topmost region at x, y or nil
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Bounds returns the rectangle covering every region
func (h *HitMap) Bounds() Rect {
	if len(h.regions) == 0 {
		return Rect{}
	}
	minX, minY := h.regions[0].Rect.X, h.regions[0].Rect.Y
	maxX, maxY := minX+h.regions[0].Rect.W, minY+h.regions[0].Rect.H
	for _, r := range h.regions[1:] {
		minX = min(minX, r.Rect.X)
		minY = min(minY, r.Rect.Y)
		maxX = max(maxX, r.Rect.X+r.Rect.W)
		maxY = max(maxY, r.Rect.Y+r.Rect.H)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
