// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// orchestration across ports, and best-effort side writes.
package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchCommandIsNotConstructed = errors.New(
	"DispatchCommand must be created via NewDispatchCommand constructor",
)

// DispatchCommand represents a request to find the technician who can reach
// a new job soonest. It carries the company whose technicians are considered
// and the free-text address of the job.
//
// Example:
//
//	cmd, err := NewDispatchCommand("QuickFix", "123 Main St, Springfield, VA")
//	if err != nil {
//	    return fmt.Errorf("invalid dispatch request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type DispatchCommand struct { //nolint:recvcheck //using for validation
	company    string
	jobAddress string

	guard guard.ConstructorGuard
}

// NewDispatchCommand creates a dispatch command.
// Validates that both the company and the job address are non-empty.
func NewDispatchCommand(company string, jobAddress string) (DispatchCommand, error) {
	dispatchCommand := DispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dispatchCommand.setCompany(company),
		dispatchCommand.setJobAddress(jobAddress),
	); err != nil {
		return DispatchCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchCommandIsNotConstructed if validation fails.
func (c DispatchCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCommandIsNotConstructed)
}

// Company returns the company whose technicians are considered.
func (c DispatchCommand) Company() string {
	return c.company
}

// JobAddress returns the free-text address of the new job.
func (c DispatchCommand) JobAddress() string {
	return c.jobAddress
}

func (c *DispatchCommand) setCompany(company string) error {
	if company == "" {
		return errs.NewValueIsRequiredError("company")
	}

	c.company = company
	return nil
}

func (c *DispatchCommand) setJobAddress(jobAddress string) error {
	if jobAddress == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.jobAddress = jobAddress
	return nil
}
