package store

// Action describes something that happened. Kind is its discriminator.
//
// Applications usually model their actions as a closed set of structs behind a
// sealed interface, each returning a constant Kind:
//
//	type CounterAction interface {
//		store.Action
//		counterAction()
//	}
//
//	type Increment struct{ By int }
//
//	func (Increment) Kind() string   { return "counter/increment" }
//	func (Increment) counterAction() {}
type Action interface {
	Kind() string
}

// PayloadAction is an action carrying untyped associated data.
type PayloadAction interface {
	Action
	Data() any
}

// Plain is a dynamic action with a string discriminator and an optional payload.
// It is what slice action creators produce.
type Plain struct {
	Type    string
	Payload any
}

func (p Plain) Kind() string { return p.Type }

func (p Plain) Data() any { return p.Payload }

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func isNil(a Action) bool {
	return a == nil
}
