package installer

// Step names
const (
	StepRoot    = "root"
	StepClone   = "clone"
	StepLocate  = "locate"
	StepPatch   = "patch"
	StepInstall = "install"
	StepExtras  = "extras"
)

// Status of a single step
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// StepResult is the outcome of one step
type StepResult struct {
	Name    string
	Status  Status
	Message string
	Err     error
}

// Report lists step outcomes in execution order
type Report struct {
	RepoDir string
	Steps   []StepResult
}

func (r *Report) add(name string, status Status, msg string, err error) {
	r.Steps = append(r.Steps, StepResult{Name: name, Status: status, Message: msg, Err: err})
}

// Step returns the result of the named step
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed reports whether any step failed
func (r *Report) Failed() bool {
	return r.Err() != nil
}

// Err returns the error of the first failed step
func (r *Report) Err() error {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return s.Err
		}
	}
	return nil
}
