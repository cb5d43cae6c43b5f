package dashboard

// Notifier is the toast surface: transient, user-visible messages. Errors
// never abort anything beyond their own operation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer guards destructive actions behind interactive confirmation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
