// Package login implements the login screen state machine: field validation,
// submission guarding, the google sign-in sub-flow with account-conflict
// resolution, and a stream of one-shot UI effects.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/finfy-auth/internal/classify"
	"github.com/dtroode/finfy-auth/internal/logger"
	"github.com/dtroode/finfy-auth/internal/model"
)

// DefaultNavigateDelay keeps success feedback visible before navigation.
const DefaultNavigateDelay = 600 * time.Millisecond

const eventBuffer = 64

const (
	msgLoginSuccess  = "Signed in! Redirecting..."
	msgLoginSnackbar = "Signed in. Welcome back."

	msgGoogleSuccess  = "Google sign-in complete! Redirecting..."
	msgGoogleSnackbar = "Google sign-in complete."
	msgGoogleConflict = "We found a local account with this email. Link it with your Google account?"
	msgGoogleFailure  = "Could not sign in with Google."

	msgResolveSuccess  = "Accounts linked! Redirecting..."
	msgResolveSnackbar = "Accounts linked successfully."
	msgResolveFailure  = "Could not link the accounts."
)

// Controller drives the login screen. It is designed for a single logical
// caller (the screen); network calls run on their own goroutines and publish
// state without ever blocking the observer.
type Controller struct {
	gateway       model.AuthGateway
	logger        *logger.Logger
	navigateDelay time.Duration

	mu                      sync.Mutex
	state                   UiState
	pendingGoogleCredential string

	events  chan Event
	updates chan struct{}
}

// Option customizes a Controller.
type Option func(*Controller)

// WithNavigateDelay overrides the delay between success feedback and the
// navigate-home event.
func WithNavigateDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.navigateDelay = d
	}
}

// NewController creates a Controller in the idle state.
func NewController(gateway model.AuthGateway, logger *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		gateway:       gateway,
		logger:        logger,
		navigateDelay: DefaultNavigateDelay,
		events:        make(chan Event, eventBuffer),
		updates:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates is a conflated change notification: a receive means the state has
// changed since the observer last read it via State.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Events delivers one-shot UI effects in emission order. The channel is meant
// for a single consumer; each event is delivered exactly once.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// OnEmailChange updates the email draft. Any edit invalidates prior feedback
// for that field and any global error.
func (c *Controller) OnEmailChange(value string) {
	c.setState(func(st *UiState) {
		st.Email = value
		st.EmailError = ""
		st.GlobalError = nil
		st.Feedback = nil
	})
}

// OnPasswordChange updates the password draft, clearing prior feedback.
func (c *Controller) OnPasswordChange(value string) {
	c.setState(func(st *UiState) {
		st.Password = value
		st.PasswordError = ""
		st.GlobalError = nil
		st.Feedback = nil
	})
}

// Submit validates the draft and starts the password login flow. It is a
// no-op while a submission is already in flight, so repeated taps cannot
// start concurrent login calls.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.IsSubmitting {
		c.mu.Unlock()
		return
	}

	email := strings.TrimSpace(c.state.Email)
	password := c.state.Password

	validation := Validate(email, password)
	if !validation.Valid() {
		c.state.EmailError = validation.EmailError
		c.state.PasswordError = validation.PasswordError
		c.state.GlobalError = nil
		c.state.Feedback = nil
		c.mu.Unlock()
		c.notify()

		if validation.EmailError != "" {
			c.emit(FocusEmail{})
		} else {
			c.emit(FocusPassword{})
		}
		return
	}

	c.state.Email = email
	c.state.IsSubmitting = true
	c.state.EmailError = ""
	c.state.PasswordError = ""
	c.state.GlobalError = nil
	c.state.Feedback = nil
	c.mu.Unlock()
	c.notify()

	go c.runLogin(ctx, email, password)
}

func (c *Controller) runLogin(ctx context.Context, email, password string) {
	_, err := c.gateway.Login(ctx, email, password)
	if ctx.Err() != nil {
		// Screen gone; whatever the gateway already committed stands.
		return
	}

	if err == nil {
		c.setState(func(st *UiState) {
			st.IsSubmitting = false
			st.Feedback = &Feedback{Kind: FeedbackSuccess, Message: msgLoginSuccess}
		})
		c.emit(ShowSnackbar{Message: msgLoginSnackbar})
		c.navigateAfterDelay(ctx)
		return
	}

	mapped := classify.Classify(err)
	c.logger.Debug("login failed", "kind", mapped.Kind.String())

	if mapped.Kind == classify.KindInvalidCredentials {
		// Intentionally ambiguous: both fields get the message so the UI
		// does not reveal which one was wrong.
		c.setState(func(st *UiState) {
			st.IsSubmitting = false
			st.EmailError = mapped.Message
			st.PasswordError = mapped.Message
			st.GlobalError = nil
			st.Feedback = nil
		})
		c.emit(FocusEmail{})
		return
	}

	c.setState(func(st *UiState) {
		st.IsSubmitting = false
		st.EmailError = ""
		st.PasswordError = ""
		st.GlobalError = &mapped
		st.Feedback = nil
	})
}

// StartGoogleSignIn marks the google flow as loading while the external
// credential capability runs. Any previously pending conflict credential is
// discarded.
func (c *Controller) StartGoogleSignIn() {
	c.mu.Lock()
	c.pendingGoogleCredential = ""
	c.state.IsGoogleLoading = true
	c.state.Feedback = nil
	c.state.GlobalError = nil
	c.state.GoogleConflictOpen = false
	c.state.GoogleConflictEmail = ""
	c.mu.Unlock()
	c.notify()
}

// ReportGoogleFailure surfaces a failure reported by the credential
// capability (cancelled, no account, misconfigured, ...) as error feedback.
func (c *Controller) ReportGoogleFailure(message string) {
	c.setState(func(st *UiState) {
		st.IsGoogleLoading = false
		st.Feedback = &Feedback{Kind: FeedbackError, Message: message}
		st.GoogleConflictOpen = false
		st.GoogleConflictEmail = ""
	})
}

// SubmitGoogle exchanges the credential for a session. A backend account
// conflict opens the confirmation dialog instead of failing.
func (c *Controller) SubmitGoogle(ctx context.Context, credential string) {
	c.setState(func(st *UiState) {
		st.IsGoogleLoading = true
		st.Feedback = nil
		st.GlobalError = nil
		st.GoogleConflictOpen = false
		st.GoogleConflictEmail = ""
	})

	go c.runGoogleLogin(ctx, credential)
}

func (c *Controller) runGoogleLogin(ctx context.Context, credential string) {
	_, err := c.gateway.LoginWithGoogle(ctx, credential)
	if ctx.Err() != nil {
		return
	}

	if err == nil {
		c.setState(func(st *UiState) {
			st.IsGoogleLoading = false
			st.Feedback = &Feedback{Kind: FeedbackSuccess, Message: msgGoogleSuccess}
		})
		c.emit(ShowSnackbar{Message: msgGoogleSnackbar})
		c.navigateAfterDelay(ctx)
		return
	}

	var conflict *model.AccountConflictError
	if errors.As(err, &conflict) {
		c.mu.Lock()
		c.pendingGoogleCredential = credential
		c.state.IsGoogleLoading = false
		c.state.Feedback = &Feedback{Kind: FeedbackInfo, Message: msgGoogleConflict}
		c.state.GoogleConflictEmail = conflict.Email
		c.state.GoogleConflictOpen = true
		c.mu.Unlock()
		c.notify()
		return
	}

	message := msgGoogleFailure
	if mapped := classify.Classify(err); mapped.Kind == classify.KindNetwork {
		message = classify.MsgNetwork
	} else if payloadMsg := payloadMessage(err); payloadMsg != "" {
		message = payloadMsg
	}

	c.setState(func(st *UiState) {
		st.IsGoogleLoading = false
		st.Feedback = &Feedback{Kind: FeedbackError, Message: message}
		st.GoogleConflictOpen = false
		st.GoogleConflictEmail = ""
	})
}

// DismissConflict discards the pending credential and closes the dialog
// without any network call.
func (c *Controller) DismissConflict() {
	c.mu.Lock()
	c.pendingGoogleCredential = ""
	c.state.GoogleConflictOpen = false
	c.state.GoogleConflictEmail = ""
	c.mu.Unlock()
	c.notify()
}

// ResolveConflict merges the accounts using the held credential. It is a
// no-op when no credential is pending.
func (c *Controller) ResolveConflict(ctx context.Context) {
	c.mu.Lock()
	credential := c.pendingGoogleCredential
	if credential == "" {
		c.mu.Unlock()
		return
	}
	c.state.IsGoogleLoading = true
	c.state.Feedback = nil
	c.state.GoogleConflictOpen = false
	c.mu.Unlock()
	c.notify()

	go c.runResolveConflict(ctx, credential)
}

func (c *Controller) runResolveConflict(ctx context.Context, credential string) {
	_, err := c.gateway.ResolveGoogleConflict(ctx, credential)
	if ctx.Err() != nil {
		return
	}

	if err == nil {
		c.mu.Lock()
		c.pendingGoogleCredential = ""
		c.state.IsGoogleLoading = false
		c.state.Feedback = &Feedback{Kind: FeedbackSuccess, Message: msgResolveSuccess}
		c.mu.Unlock()
		c.notify()

		c.emit(ShowSnackbar{Message: msgResolveSnackbar})
		c.navigateAfterDelay(ctx)
		return
	}

	message := msgResolveFailure
	if payloadMsg := payloadMessage(err); payloadMsg != "" {
		message = payloadMsg
	}

	// The credential was consumed by the attempt and is not retried.
	c.setState(func(st *UiState) {
		st.IsGoogleLoading = false
		st.Feedback = &Feedback{Kind: FeedbackError, Message: message}
	})
}

func (c *Controller) navigateAfterDelay(ctx context.Context) {
	timer := time.NewTimer(c.navigateDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	c.emit(NavigateHome{})
}

func (c *Controller) setState(mutate func(*UiState)) {
	c.mu.Lock()
	mutate(&c.state)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("dropping UI event, consumer is not keeping up",
			"event", fmt.Sprintf("%T", ev))
	}
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// payloadMessage extracts the backend-provided message from a status error,
// if any.
func payloadMessage(err error) string {
	var statusErr *model.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Payload.Message
	}
	return ""
}
