package enums

import "fmt"

// WorkerTask is the unit of work a worker is assigned on an order.
type WorkerTask string

const (
	WorkerTaskCutting   WorkerTask = "Cutting"
	WorkerTaskStitching WorkerTask = "Stitching"
)

var validWorkerTasks = []WorkerTask{
	WorkerTaskCutting,
	WorkerTaskStitching,
}

// String implements fmt.Stringer.
func (w WorkerTask) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WorkerTask.
func (w WorkerTask) IsValid() bool {
	for _, candidate := range validWorkerTasks {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkerTask converts raw input into a WorkerTask.
func ParseWorkerTask(value string) (WorkerTask, error) {
	for _, candidate := range validWorkerTasks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid worker task %q", value)
}
