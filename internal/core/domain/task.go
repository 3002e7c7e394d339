package domain

// Task represents a unit of work in the build phase of a job.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name        InternedString
	Command     []string
	WorkingDir  InternedString
	Environment map[string]string
	RunIf       RunIf
}
