package scheduler

// TaskHandle inspects and controls one scheduled entry. Handles remain
// valid across scheduler restarts; operations fail with ErrJobNotFound
// after the entry is removed.
type TaskHandle struct {
	id string
	st *store
}

// ID returns the entry's identifier.
func (h *TaskHandle) ID() string { return h.id }

// SetEnabled enables or disables the entry. Disabled entries are never
// claimed by the tick loop.
func (h *TaskHandle) SetEnabled(enabled bool) error {
	return h.st.setEnabled(h.id, enabled)
}

// Info returns a snapshot of the entry's state.
func (h *TaskHandle) Info() (JobInfo, error) {
	return h.st.info(h.id)
}

// IsRunning reports whether the entry is currently executing.
func (h *TaskHandle) IsRunning() (bool, error) {
	info, err := h.st.info(h.id)
	if err != nil {
		return false, err
	}
	return info.IsRunning, nil
}

// ExecutionCount returns how many times the entry has been dispatched.
func (h *TaskHandle) ExecutionCount() (uint64, error) {
	info, err := h.st.info(h.id)
	if err != nil {
		return 0, err
	}
	return info.ExecutionCount, nil
}
