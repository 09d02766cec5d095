package generators

// State is the conversation fed to a generator. Wrappers add behavior and expose the wrapped state through Unwrap.
type State interface {
	Contents() []*Content
	AppendContent(*Content) (State, error)
	SystemPrompt() string
	Flush() (State, error)
	Unwrap() State
}

// As walks the wrapper chain of state and returns the first layer of type T.
func As[T State](state State) (ret T, ok bool) {
	for state != nil {
		if ret, ok = state.(T); ok {
			return
		}
		state = state.Unwrap()
	}
	return
}
