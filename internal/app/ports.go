package app

// Capability ports for the outer layers. Absence of a capability is an
// explicit no-op implementation, never a missing method.

// Notifier surfaces user-visible messages. Failures are reported here, not
// through blocking dialogs.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}

// Renderer is asked to repaint after undo/redo swaps the collections.
type Renderer interface {
	Render()
}

type NopRenderer struct{}

func (NopRenderer) Render() {}
