package store

// Replay folds actions through reducer starting from initial, the way a store
// would dispatch them. Replaying the same actions from the same state always
// gives the same result.
//
// On a reducer panic it stops and returns the last good state with a *ReducerError.
func Replay[S any, A Action](initial S, reducer Reducer[S, A], actions ...A) (S, error) {
	state := initial

	for _, action := range actions {
		next, err := reduce(reducer, state, action)
		if err != nil {
			return state, err
		}
		state = next
	}

	return state, nil
}
