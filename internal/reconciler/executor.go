package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alertstate/internal/monitor"
	"alertstate/internal/observe"
	"alertstate/pkg/logging"
)

// RetryPolicy bounds how often a throttled call is re-issued.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Cooldown is the fixed wait before each retry.
	Cooldown time.Duration
}

// DefaultRetryPolicy allows 3 retries with a 60 second cooldown.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Cooldown: 60 * time.Second}

// WaitFunc blocks for the given cooldown. It is not cancellable.
type WaitFunc func(d time.Duration)

// Executor issues one action against the mutation client and retries it
// while it is throttled.
type Executor struct {
	client MutationClient
	policy RetryPolicy
	sink   observe.Sink
	wait   WaitFunc
}

// NewExecutor creates an executor. A nil wait uses time.Sleep.
func NewExecutor(client MutationClient, policy RetryPolicy, sink observe.Sink, wait WaitFunc) *Executor {
	if wait == nil {
		wait = time.Sleep
	}
	if sink == nil {
		sink = observe.Discard
	}
	return &Executor{
		client: client,
		policy: policy,
		sink:   sink,
		wait:   wait,
	}
}

// Execute runs the action until it succeeds, is rejected or has been
// throttled MaxRetries+1 times. The retry counter belongs to this call only.
func (e *Executor) Execute(ctx context.Context, action Action) Result {
	retries := 0
	for attempt := 1; ; attempt++ {
		err := e.call(ctx, action)
		if err == nil {
			e.sink.Observe(fmt.Sprintf("Successfully %s monitor:", action.Kind.verb()), action.Name)
			return Result{Action: action, Outcome: OutcomeApplied, Attempts: attempt}
		}

		var apiErr *monitor.APIError
		isAPIErr := errors.As(err, &apiErr)
		if isAPIErr {
			e.sink.Fail(fmt.Sprintf("Failed to %s monitor: %s", action.Kind, action.Name), apiErr.Messages()...)
		} else {
			e.sink.Fail(fmt.Sprintf("Failed to %s monitor: %s", action.Kind, action.Name), err.Error())
		}

		if !isAPIErr || !apiErr.RateLimited() {
			logging.Warn("Executor", "Abandoning %s of %s: %v", action.Kind, action.Name, err)
			return Result{Action: action, Outcome: OutcomeRejected, Attempts: attempt, Err: err}
		}

		if retries >= e.policy.MaxRetries {
			e.sink.Fail(fmt.Sprintf("Retried %d times. Aborting.", e.policy.MaxRetries))
			logging.Warn("Executor", "Abandoning %s of %s after %d attempts", action.Kind, action.Name, attempt)
			return Result{Action: action, Outcome: OutcomeRetryExhausted, Attempts: attempt, Err: err}
		}

		retries++
		e.sink.Fail(fmt.Sprintf("Failed; possible rate limit. Waiting %s and retrying", e.policy.Cooldown))
		e.wait(e.policy.Cooldown)
		e.sink.Fail("Retrying...")
	}
}

func (e *Executor) call(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionCreate:
		_, err := e.client.CreateMonitor(ctx, action.Record)
		return err
	case ActionUpdate:
		_, err := e.client.UpdateMonitor(ctx, action.RemoteID, action.Record)
		return err
	case ActionDelete:
		return e.client.DeleteMonitor(ctx, action.RemoteID)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}
