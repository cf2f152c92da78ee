package task

// TaskOption mutates a task in place. Constructors return nil when there is
// nothing to apply, and callers skip nil options.
type TaskOption func(*Task)

// WithStatus overwrites the status. Any status other than done clears the
// fun rating.
func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
		if status != StatusDone {
			task.FunRating = nil
		}
	}
}

func WithFunRating(rating *int) TaskOption {
	if rating == nil {
		return nil
	}
	r := *rating
	return func(task *Task) {
		task.FunRating = &r
	}
}

func Apply(t *Task, options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
