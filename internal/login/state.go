package login

import "github.com/dtroode/finfy-auth/internal/classify"

// FeedbackKind distinguishes the tone of a transient feedback message.
type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackInfo
	FeedbackWarning
	FeedbackError
)

// Feedback is a transient message shown near the form.
type Feedback struct {
	Kind    FeedbackKind
	Message string
}

// UiState is the immutable snapshot the presentation layer observes. It is
// replaced atomically on every transition, never mutated in place by
// observers.
type UiState struct {
	Email         string
	Password      string
	EmailError    string
	PasswordError string
	GlobalError   *classify.Error
	Feedback      *Feedback
	IsSubmitting  bool

	IsGoogleLoading     bool
	GoogleConflictEmail string
	GoogleConflictOpen  bool
}

// Event is a one-shot UI effect. Unlike state, each event must be actioned
// exactly once by the observing presentation layer and is never replayed.
type Event interface {
	event()
}

// ShowSnackbar asks the presentation layer to show a transient snackbar.
type ShowSnackbar struct {
	Message string
}

// NavigateHome asks the presentation layer to leave the login screen.
type NavigateHome struct{}

// FocusEmail moves input focus to the email field.
type FocusEmail struct{}

// FocusPassword moves input focus to the password field.
type FocusPassword struct{}

func (ShowSnackbar) event()  {}
func (NavigateHome) event()  {}
func (FocusEmail) event()    {}
func (FocusPassword) event() {}
