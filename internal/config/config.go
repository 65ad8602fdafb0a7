package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the tunable match policy loaded at module start.
type GameConfig struct {
	// ForfeitAwardsWin declares the last remaining player the winner when a
	// forfeit drops the roster below two.
	ForfeitAwardsWin bool `json:"forfeit_awards_win"`
	// CPUMissionDrawChance is the probability a CPU tops up missions before
	// trying anything else on its turn.
	CPUMissionDrawChance float64 `json:"cpu_mission_draw_chance"`
	// BotMinDelaySeconds / BotMaxDelaySeconds bound the artificial thinking
	// delay before a CPU turn resolves.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds is how long a solo lobby waits before CPU
	// seats are filled.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, falling back to defaults
// when no file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return GameConfig{
			ForfeitAwardsWin:        false,
			CPUMissionDrawChance:    0.7,
			BotMinDelaySeconds:      1,
			BotMaxDelaySeconds:      2,
			BotAutoFillDelaySeconds: 5,
		}
	}
	return *cfg
}
