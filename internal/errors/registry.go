package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No shwimple.yaml or shwimple.json was found at the given path.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed. Check the YAML or JSON syntax.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config value is out of range or has the wrong type.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Unknown layout",
		Detail:   "Layouts are standard, docs and landing.",
	},

	// ============================================
	// Page File Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryPageFile,
		Message:  "Page file not found",
		Detail:   "The page file does not exist or cannot be read.",
	},
	"E202": {
		Category: CategoryPageFile,
		Message:  "Invalid page file syntax",
		Detail:   "The page file is not valid YAML or JSON.",
	},
	"E203": {
		Category: CategoryPageFile,
		Message:  "Element without tag",
		Detail:   "Every element in a page file needs a tag.",
	},
	"E204": {
		Category: CategoryPageFile,
		Message:  "Conflicting element content",
		Detail:   "An element may set at most one of text, markdown, html, raw and sanitize.",
	},
	"E205": {
		Category: CategoryPageFile,
		Message:  "Markdown conversion failed",
		Detail:   "The markdown content of an element could not be converted to HTML.",
	},
	"E206": {
		Category: CategoryPageFile,
		Message:  "HTML fragment parse failed",
		Detail:   "The html content of an element could not be parsed.",
	},
	"E207": {
		Category: CategoryPageFile,
		Message:  "Unknown layout",
		Detail:   "Layouts are standard, docs and landing.",
	},

	// ============================================
	// Publish Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryPublish,
		Message:  "Bucket not configured",
		Detail:   "Set publish.bucket in shwimple.yaml or pass --bucket.",
	},
	"E302": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		Detail:   "One or more pages could not be uploaded to the bucket.",
	},
	"E303": {
		Category: CategoryPublish,
		Message:  "Render failed",
		Detail:   "A page produced no document. Page files need at least one section.",
	},
	"E304": {
		Category: CategoryPublish,
		Message:  "Credentials missing",
		Detail:   "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY to publish.",
	},

	// ============================================
	// Server Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The preview server could not listen on the configured address. Another process may be using the port.",
	},
	"E402": {
		Category: CategoryServer,
		Message:  "File watcher failed",
		Detail:   "The pages directory could not be watched for changes.",
	},

	// ============================================
	// CLI Errors (E500-E599)
	// ============================================

	"E501": {
		Category: CategoryCLI,
		Message:  "Directory not empty",
		Detail:   "shwimple init only writes into an empty or missing directory.",
	},
	"E502": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command line flag has an unsupported value.",
	},
	"E503": {
		Category: CategoryCLI,
		Message:  "Write failed",
		Detail:   "The output file could not be written.",
	},
	"E504": {
		Category: CategoryCLI,
		Message:  "Unknown template",
		Detail:   "The requested starter template does not exist.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
