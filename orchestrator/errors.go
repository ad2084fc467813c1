package orchestrator

import "fmt"

// MissingAnnotationError means a transcript exists for a recording that has no
// speech-activity rows. The recording is skipped, not failed.
type MissingAnnotationError struct {
	Recording string
}

func (e *MissingAnnotationError) Error() string {
	return fmt.Sprintf("recording %s: no speech-activity annotation", e.Recording)
}

// RecordingError ties a processing failure to its recording.
type RecordingError struct {
	Recording string
	Err       error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("recording %s: %v", e.Recording, e.Err)
}

func (e *RecordingError) Unwrap() error { return e.Err }
