package osim

// Stage is one level of the monotonic realization pipeline. Later stages
// depend on earlier ones; a context never moves backward except through a
// full state reset.
type Stage int

const (
	StageInstantiated Stage = iota
	StagePosition
	StageVelocity
	StageDynamics
	StageAcceleration
	StageReport
)

func (s Stage) String() string {
	switch s {
	case StageInstantiated:
		return "instantiated"
	case StagePosition:
		return "position"
	case StageVelocity:
		return "velocity"
	case StageDynamics:
		return "dynamics"
	case StageAcceleration:
		return "acceleration"
	case StageReport:
		return "report"
	default:
		return "unknown"
	}
}
