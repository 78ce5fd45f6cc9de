package pumptest

// StepMinutes is the spacing of the measurement table.
const StepMinutes = 15

// Intervals returns 0, step, 2*step, ... up to the last multiple of step that
// does not exceed totalMinutes. A non-positive step falls back to StepMinutes.
func Intervals(totalMinutes, step int) []int {
	if step <= 0 {
		step = StepMinutes
	}
	if totalMinutes < 0 {
		return []int{}
	}
	out := make([]int, 0, totalMinutes/step+1)
	for t := 0; t <= totalMinutes; t += step {
		out = append(out, t)
	}
	return out
}
