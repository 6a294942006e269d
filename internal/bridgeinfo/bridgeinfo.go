package bridgeinfo

// Metadata captures static identifiers for the bridge. Centralising the values
// makes it easy to clone this repository for new native bridges.
type Metadata struct {
	Name        string
	BinaryName  string
	Slug        string
	Description string
	GeneratorID string
}

// Info describes the current bridge.
var Info = Metadata{
	Name:        "Ambient Scribe Inference Bridge",
	BinaryName:  "libambientbridge",
	Slug:        "ambientscribe-bridge",
	Description: "In-process bridge for on-device clinical note generation and transcription.",
	GeneratorID: "ambientscribe-bridge",
}

// DiagnosticMetadata produces the standard metadata payload attached to
// diagnostic records emitted at the boundary.
func DiagnosticMetadata(operation, callID string) map[string]string {
	return map[string]string{
		"generator": Info.GeneratorID,
		"operation": operation,
		"call_id":   callID,
	}
}
