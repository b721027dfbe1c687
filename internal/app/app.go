// Package app wires the settings manager, prompt engine, and wizard
// session together for the CLI.
package app

import (
	"wpswizard-cli/internal/config"
	"wpswizard-cli/internal/interactive"
	"wpswizard-cli/internal/wizard"
	"wpswizard-cli/pkg/models"
)

// Run executes one full wizard session from a CLI request.
func Run(request *models.SessionRequest) error {
	manager := config.NewManager()

	if _, err := manager.Load(request.ConfigPath); err != nil {
		return wizard.NewConfigurationError("failed to load settings", err)
	}

	if request.OutputPath != "" {
		manager.SetFlag("output_file", request.OutputPath)
	}
	if request.ExistingPath != "" {
		manager.SetFlag("existing_file", request.ExistingPath)
	}

	cfg, err := manager.Resolve()
	if err != nil {
		return wizard.NewConfigurationError("failed to resolve settings", err)
	}

	if err := manager.Validate(cfg); err != nil {
		return wizard.NewConfigurationError(err.Error(), err)
	}

	prompter := interactive.NewTerminal()
	prompter.SetQuitWord(cfg.QuitWord)

	session := wizard.NewSession(prompter, cfg)
	return session.Run(request)
}
