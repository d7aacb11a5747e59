package lsp

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
)

// ServerOptions is the typed form of the `initializationOptions` map
// described in spec §6. Unknown keys are logged and ignored rather than
// rejected, per the "Dynamic JSON options" design note.
type ServerOptions struct {
	MinimumSeverity assembler.Severity
	OnlyReloadOnSave bool
	LogToFile        bool
}

type rawServerOptions struct {
	Diagnostics struct {
		MinimumSeverity string `json:"minimumSeverity"`
	} `json:"diagnostics"`
	OnlyReloadOnSave bool   `json:"onlyReloadOnSave"`
	LogToFile        string `json:"logToFile"`
}

// ParseServerOptions decodes raw initializationOptions JSON into a typed
// ServerOptions, defaulting minimum severity to WARNING when absent or
// unrecognized.
func ParseServerOptions(raw json.RawMessage, logger *zap.Logger) ServerOptions {
	opts := ServerOptions{MinimumSeverity: assembler.SeverityWarning}
	if len(raw) == 0 {
		return opts
	}

	var parsed rawServerOptions
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if logger != nil {
			logger.Warn("failed to parse initializationOptions", zap.Error(err))
		}
		return opts
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err == nil && logger != nil {
		for key := range keys {
			switch key {
			case "diagnostics", "onlyReloadOnSave", "logToFile":
			default:
				logger.Warn("ignoring unknown initializationOptions key", zap.String("key", key))
			}
		}
	}

	if parsed.Diagnostics.MinimumSeverity != "" {
		if sev, ok := assembler.ParseSeverity(parsed.Diagnostics.MinimumSeverity); ok {
			opts.MinimumSeverity = sev
		} else if logger != nil {
			logger.Warn("unrecognized diagnostics.minimumSeverity", zap.String("value", parsed.Diagnostics.MinimumSeverity))
		}
	}
	opts.OnlyReloadOnSave = parsed.OnlyReloadOnSave
	opts.LogToFile = parsed.LogToFile == "enabled"
	return opts
}
