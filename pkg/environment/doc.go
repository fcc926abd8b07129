// Package environment names the application environment (development,
// staging, production) as a typed string so configuration and logging code
// can branch on it without comparing raw strings.
//
// Parse normalizes free-form input, accepting the common short aliases
// ("dev", "stage", "prod") and falling back to Development for anything it
// does not recognize. The predicates IsDevelopment, IsStaging and
// IsProduction answer the usual questions directly on the value.
//
// # Usage
//
// Import the package:
//
//	import "github.com/dmitrymomot/sessionkit/pkg/environment"
//
// Normalize an environment name from configuration:
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // production-specific behaviour
//	}
//
// All helpers are allocation-free and never return errors; unrecognized
// input maps to Development.
package environment
