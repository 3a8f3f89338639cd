package quality

import "fmt"

// ConfigurationError reports an invalid catalog: weights that do not sum to 1,
// malformed thresholds, or an incomplete parameter set. It is raised at
// construction time only and is fatal — a process with a broken catalog must
// not serve evaluations.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid scoring configuration: " + e.Reason
}

// UnknownParameterError reports an input name that is not one of the fifteen
// supported parameters.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}

// MissingValueError reports a parameter submitted without a value.
type MissingValueError struct {
	Parameter string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value found for parameter %q", e.Parameter)
}

// NonNumericValueError reports a parameter whose value is not a number.
type NonNumericValueError struct {
	Parameter string
	Value     any
}

func (e *NonNumericValueError) Error() string {
	return fmt.Sprintf("non-numeric value %v for parameter %q", e.Value, e.Parameter)
}
