package coursecmd

// FeatureGates exposes runtime toggles read by the course command handlers.
// Closures keep the handlers decoupled from the configuration struct.
type FeatureGates struct {
	// ValidationEnabled turns on schema validation of parsed units.
	ValidationEnabled func() bool
}

func (g FeatureGates) validationEnabled() bool {
	if g.ValidationEnabled == nil {
		return false
	}
	return g.ValidationEnabled()
}
