package matrix

// DeviceMatrix is what network elements stamp into.
type DeviceMatrix interface {
	AddElement(i, j int, value float64) error // 1-based indexing
	AddRHS(i int, value float64) error
}
