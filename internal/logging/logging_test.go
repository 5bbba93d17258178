package logging

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "JSON format to stdout",
			config: Config{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name: "Console format to stderr",
			config: Config{
				Level:  "debug",
				Format: "console",
				Output: "stderr",
			},
			wantErr: false,
		},
		{
			name: "Invalid log level defaults to info",
			config: Config{
				Level:  "invalid",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("Expected non-nil logger")
			}
		})
	}
}

func TestLoggerWithHelpers(t *testing.T) {
	logger, err := NewDefaultLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if l := logger.WithRequestID("req-1"); l == nil {
		t.Error("WithRequestID returned nil")
	}
	if l := logger.WithUserID("user-1"); l == nil {
		t.Error("WithUserID returned nil")
	}
	if l := logger.WithIdentifier("abc123", "ip"); l == nil {
		t.Error("WithIdentifier returned nil")
	}
	if l := logger.WithField("key", "value"); l == nil {
		t.Error("WithField returned nil")
	}
}
