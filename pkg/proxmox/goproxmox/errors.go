package goproxmox

import "github.com/pkg/errors"

var (
	// ErrNotRegularFile is returned when the template path is a directory or device.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNoTask is returned when an upload response does not name a task.
	ErrNoTask = errors.New("upload response carries no task identifier")

	// ErrNoData is returned when a response envelope has a null or missing data member.
	ErrNoData = errors.New("response carries no data")
)
