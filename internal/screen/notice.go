package screen

import "time"

// NoticeKind is the severity of a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

const (
	msgFetchFailed  = "Error fetching trades"
	msgDeleted      = "Trade deleted successfully."
	msgDeleteFailed = "Failed to delete trade."
	msgSaved        = "Trade saved successfully!"
	msgSubmitFailed = "An error occurred, please try again later."
)

// Notice is a transient message a screen shows until it dismisses itself after Duration.
type Notice struct {
	Kind     NoticeKind
	Message  string
	Duration time.Duration
}

// IsError reports whether the notice reports a failure.
func (n *Notice) IsError() bool {
	return n != nil && n.Kind == NoticeError
}

// DurationMillis is Duration in milliseconds, for client-side timers.
func (n *Notice) DurationMillis() int64 {
	if n == nil {
		return 0
	}
	return n.Duration.Milliseconds()
}

func newNotice(kind NoticeKind, message string, d time.Duration) *Notice {
	return &Notice{Kind: kind, Message: message, Duration: d}
}

// SavedNotice is the success notice of a submitted form, for a screen the
// form navigated to.
func SavedNotice(d time.Duration) *Notice {
	return newNotice(NoticeSuccess, msgSaved, d)
}

// DeletedNotice is the success notice of a delete, for the listing shown after it.
func DeletedNotice(d time.Duration) *Notice {
	return newNotice(NoticeSuccess, msgDeleted, d)
}

// DeleteFailedNotice is the error notice of a failed delete.
func DeleteFailedNotice(d time.Duration) *Notice {
	return newNotice(NoticeError, msgDeleteFailed, d)
}
