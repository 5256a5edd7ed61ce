package domain

// RuleStore is the host's mutable rule registry: rule name to string value.
//
// SetOrCreate writes a value, creating the rule when it does not exist yet.
// Keys enumerates rule names in a stable order.
type RuleStore interface {
	Get(key string) (string, bool)
	Has(key string) bool
	SetOrCreate(key, value string) error
	Keys() []string
}

// Unwrapper is implemented by RuleStore decorators that expose the store they
// decorate.
type Unwrapper interface {
	Unwrap() RuleStore
}

// BaseStore peels every decorator layer off s and returns the innermost store.
func BaseStore(s RuleStore) RuleStore {
	for {
		u, ok := s.(Unwrapper)
		if !ok {
			return s
		}
		inner := u.Unwrap()
		if inner == nil {
			return s
		}
		s = inner
	}
}
