package schedule

import "context"

// Task 周期任务, Run is called once per tick.
type Task interface {
	Run(ctx context.Context) error
	Name() string
}

// TaskFunc adapts a plain function to a named Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (f TaskFunc) Run(ctx context.Context) error {
	return f.Fn(ctx)
}

func (f TaskFunc) Name() string {
	return f.TaskName
}
