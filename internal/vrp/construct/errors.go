package construct

import "fmt"

// UnassignableError signals that the cheapest-insertion heuristic could
// not find any feasible vehicle/position for a job, even though the
// Problem Instance validated successfully (every job has at least one
// skill-compatible vehicle). Capacity or time windows left no feasible
// position for the job, either given the jobs placed before it or on its
// own (for example, a delivery above every compatible vehicle's capacity).
type UnassignableError struct {
	JobID int
}

func (e *UnassignableError) Error() string {
	return fmt.Sprintf("construct: no feasible vehicle/position found for job %d", e.JobID)
}
