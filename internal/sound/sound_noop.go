//go:build ci

package sound

import "github.com/palemoky/elite-card-game/internal/game/engine"

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {
	// No-op
}

func (sm *SoundManager) PlayEvent(ev engine.Event) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}
