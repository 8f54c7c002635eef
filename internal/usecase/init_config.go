package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Force bool // Overwrite an existing file
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes the configuration template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates the data dir configuration file.
// The output carries the target path even when the file already exists.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	path, err := uc.configManager.InitConfig(in.Force)
	return &InitConfigOutput{Path: path}, err
}
