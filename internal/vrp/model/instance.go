package model

// ProblemInstance is the immutable container holding jobs, vehicles, the
// square cost Matrix, and precomputed vehicle/job skill compatibility. It is
// exclusively owned by nothing but itself: Jobs, Vehicles and the Matrix
// never change once NewProblemInstance returns successfully.
type ProblemInstance struct {
	Jobs     []Job
	Vehicles []Vehicle
	M        Matrix

	// compatible[v][j] caches whether vehicle v can serve job j, i.e.
	// Jobs[j].SkillsSubsetOf(Vehicles[v].Skills).
	compatible [][]bool
}

// NewProblemInstance validates and builds a ProblemInstance. Validation
// covers: matrix size against the maximum matrix index referenced by any
// job or vehicle, every job's time windows non-empty and sorted, and every
// job skill-compatible with at least one vehicle.
func NewProblemInstance(jobs []Job, vehicles []Vehicle, m Matrix) (ProblemInstance, error) {
	maxIndex := -1
	for _, j := range jobs {
		if j.Index > maxIndex {
			maxIndex = j.Index
		}
		if !sortedAndNonEmpty(j.TWs) {
			return ProblemInstance{}, newValidationError("job %d: time windows must be non-empty, sorted and non-overlapping", j.ID)
		}
	}
	for _, v := range vehicles {
		if v.HasStart() && v.StartIndex() > maxIndex {
			maxIndex = v.StartIndex()
		}
		if v.HasEnd() && v.EndIndex() > maxIndex {
			maxIndex = v.EndIndex()
		}
	}
	if maxIndex >= m.Size() {
		return ProblemInstance{}, newValidationError("matrix size %d is smaller than the highest referenced index %d", m.Size(), maxIndex)
	}

	compatible := make([][]bool, len(vehicles))
	for vi, v := range vehicles {
		row := make([]bool, len(jobs))
		for ji, j := range jobs {
			row[ji] = j.SkillsSubsetOf(v.Skills)
		}
		compatible[vi] = row
	}
	for ji, j := range jobs {
		ok := false
		for vi := range vehicles {
			if compatible[vi][ji] {
				ok = true
				break
			}
		}
		if !ok {
			return ProblemInstance{}, newValidationError("job %d: no vehicle has the required skills", j.ID)
		}
	}

	return ProblemInstance{Jobs: jobs, Vehicles: vehicles, M: m, compatible: compatible}, nil
}

// VehicleOKWithJob reports whether vehicle vehicleIdx may serve job jobIdx,
// per the precomputed skill-compatibility table.
func (p ProblemInstance) VehicleOKWithJob(vehicleIdx, jobIdx int) bool {
	return p.compatible[vehicleIdx][jobIdx]
}

// JobIndex returns the matrix index of the job at job rank jobIdx (an index
// into p.Jobs, not a matrix index).
func (p ProblemInstance) JobIndex(jobIdx int) int {
	return p.Jobs[jobIdx].Index
}
