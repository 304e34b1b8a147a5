package main

import "fmt"

// IntentError represents a rejected viewer intent
type IntentError struct {
	Code    string
	Message string
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
