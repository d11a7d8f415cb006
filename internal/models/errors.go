package models

import "fmt"

// LoadError reports that a startup resource (model artifact, demographics
// source) could not be loaded. The service must not start serving after one.
type LoadError struct {
	Resource string
	Source   string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Resource, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
