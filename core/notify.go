package core

// Notification is a short user-facing message (toast).
type Notification struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Notifier surfaces notifications to the user.
// Implementations live under services/notify.
type Notifier interface {
	Notify(n Notification)
}
