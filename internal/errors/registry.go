package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

var registry = map[string]Template{
	// ============================================
	// Binding Errors (B001-B099)
	// ============================================

	"B001": {
		Category:   CategoryBinding,
		Message:    "Container is nil",
		Detail:     "A binding needs a container to read from and write to.",
		Suggestion: "Pass the atom (or other container) the component should mirror",
	},
	"B002": {
		Category:   CategoryBinding,
		Message:    "Container Subscribe panicked",
		Detail:     "The container failed while registering the binding's listener, so the binding cannot stay in sync.",
		Suggestion: "Check the container's Subscribe implementation",
	},
	"B003": {
		Category:   CategoryBinding,
		Message:    "Container Subscribe returned a nil unsubscribe handle",
		Detail:     "Without an unsubscribe handle the subscription could never be released on teardown.",
		Suggestion: "Return a non-nil func() from Subscribe",
	},
	"B004": {
		Category:   CategoryBinding,
		Message:    "Container Subscribe did not deliver the initial value",
		Detail:     "Subscribe must call the listener with the current value before returning.",
		Suggestion: "Use a container with subscribe semantics, or bind with WithoutInitialNotify()",
	},

	// ============================================
	// Binding Warnings (B100-B199)
	// ============================================

	"B101": {
		Category: CategoryWarning,
		Message:  "Write to a disposed binding ignored",
		Detail:   "The owning component has been torn down; the write reached neither the local cell nor the container.",
	},
	"B102": {
		Category: CategoryWarning,
		Message:  "Binding created outside a component scope",
		Detail:   "No owner was current, so the subscription is only released by an explicit Dispose call.",
	},

	// ============================================
	// Configuration Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create storebridge.yaml or pass --config",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "Configuration file could not be parsed",
		Suggestion: "Check the file is valid JSON or YAML",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI Errors (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryCLI,
		Message:    "Unknown binding variant",
		Suggestion: "Use one of: signal, store, mutable",
	},
	"R002": {
		Category:   CategoryCLI,
		Message:    "Unknown action in click script",
		Suggestion: "Use a comma separated list of inc and dec",
	},
	"R003": {
		Category: CategoryCLI,
		Message:  "Rendered text did not match the expected value",
	},
}
