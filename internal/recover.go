package internal

import "fmt"

// Catch runs fn and turns a panic into an error.
// A panic value that already is an error is returned as is.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = AsError(r)
		}
	}()

	fn()
	return nil
}

func AsError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}

	return fmt.Errorf("panic: %v", r)
}
