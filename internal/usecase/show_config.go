package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Merged configuration
	GlobalConfig    domain.ConfigInfo // Global config file info
	LocalConfig     domain.ConfigInfo // Data dir config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the effective config.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	effective, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}

	files := uc.configManager.GetConfigInfo()
	return &ShowConfigOutput{
		GlobalConfig:    files.Global,
		LocalConfig:     files.Local,
		EffectiveConfig: effective,
	}, nil
}
