package service

// Notifier receives a change event after every successful mutation. The
// owning application wires this to its change-propagation transport; a nil
// notifier disables propagation.
type Notifier interface {
	Publish(entity string, action string, payload interface{})
}
