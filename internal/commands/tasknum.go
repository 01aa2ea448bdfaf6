package commands

import (
	"errors"
	"fmt"
	"strconv"

	"taskwire/internal/service"
	"taskwire/internal/syncer"
)

// ErrTaskNumRequired indicates no task number was provided.
var ErrTaskNumRequired = errors.New("task number required")

// parseTaskNum parses the 1-based task number from args.
// The number refers to the task's position in the full cache as printed
// by `taskwire list`, which keeps references stable under filtering.
func parseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumRequired
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	if n < 1 {
		return 0, fmt.Errorf("task number out of range: %d", n)
	}
	return n, nil
}

// resolveTask maps a 1-based number to the cached task at that position.
func resolveTask(syn *syncer.Syncer, num int) (service.Task, error) {
	tasks := syn.Tasks()
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
