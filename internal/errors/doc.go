// Package errors provides the coded error registry shared by the bridge and
// the storebridge CLI.
//
// Every error code maps to a category, a short message and a longer detail.
// Library code builds errors from codes; the CLI prints them with Format.
//
// # Error Codes
//
//   - B001-B099: binding errors raised at bind time
//   - B100-B199: binding warnings (never returned, only logged)
//   - C001-C099: configuration errors
//   - R001-R099: CLI run errors
//
// # Usage
//
//	err := errors.New("C003").
//	    WithDetail(`log.level must be one of debug, info, warn, error`).
//	    WithSuggestion("Set log.level in storebridge.yaml")
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR C003: Invalid configuration value
//	//
//	//   log.level must be one of debug, info, warn, error
//	//
//	//   Hint: Set log.level in storebridge.yaml
package errors
