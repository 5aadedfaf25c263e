package errors

// docBaseURL is the base for per-code documentation links.
const docBaseURL = "https://glintkit.dev/docs/errors/"

// definition holds the static part of an error code.
type definition struct {
	category Category
	message  string
}

// definitions maps error codes to their static definitions.
var definitions = map[string]definition{
	// Registry errors
	"E001": {CategoryRegistry, "invalid element tag"},
	"E002": {CategoryRegistry, "element tag already defined"},
	"E003": {CategoryRegistry, "unknown element tag"},

	// Schema errors
	"E010": {CategorySchema, "invalid element schema"},
	"E011": {CategorySchema, "duplicate property name"},
	"E012": {CategorySchema, "duplicate reflected attribute"},

	// Config errors
	"E020": {CategoryConfig, "config file not found"},
	"E021": {CategoryConfig, "config file is not valid JSON"},
	"E022": {CategoryConfig, "config value out of range"},

	// Snapshot errors
	"E030": {CategorySnapshot, "snapshot save failed"},
	"E031": {CategorySnapshot, "snapshot not found"},

	// Protocol errors
	"E040": {CategoryProtocol, "malformed client frame"},
	"E041": {CategoryProtocol, "unsupported frame type"},

	// CLI errors
	"E050": {CategoryCLI, "invalid command arguments"},
}
