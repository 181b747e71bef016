package model

// Vehicle is a single fleet member. Start and End are independently
// optional matrix indices (a vehicle may start from a depot but not return,
// or vice versa) following the original VROOM model rather than the
// single-hub simplification of a delivery truck.
type Vehicle struct {
	ID       int
	Start    *int
	End      *int
	Capacity Amount
	Skills   map[int]struct{}
	TW       TimeWindow
}

// HasStart reports whether the vehicle has a fixed start location.
func (v Vehicle) HasStart() bool { return v.Start != nil }

// HasEnd reports whether the vehicle has a fixed end location.
func (v Vehicle) HasEnd() bool { return v.End != nil }

// StartIndex returns the matrix index of the vehicle's start, panicking if
// absent; callers must guard with HasStart.
func (v Vehicle) StartIndex() int { return *v.Start }

// EndIndex returns the matrix index of the vehicle's end, panicking if
// absent; callers must guard with HasEnd.
func (v Vehicle) EndIndex() int { return *v.End }
