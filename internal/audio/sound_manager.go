// Package audio synthesizes the shot sound effects.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

const (
	sampleRate    = beep.SampleRate(44100)
	masterVolume  = 0.4
	speakerBuffer = time.Millisecond * 100
)

type SoundType int

const (
	SoundMiss SoundType = iota
	SoundHit
	SoundSunk
	SoundVictory
)

// SoundManager mixes effects into a single speaker stream. A manager that
// failed to initialize stays silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

var _ mb.ShotListener = (*SoundManager)(nil)

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) Play(soundType SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := GetSoundEffect(soundType)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// OnShot picks the effect matching the outcome of a shot.
func (sm *SoundManager) OnShot(game *mb.Game, record mb.ShotRecord) {
	soundType := SoundForShot(game, record)
	log.Printf("sound effect\tgame: %s\ttype: %d", game.Uuid, soundType)
	sm.Play(soundType)
}

func SoundForShot(game *mb.Game, record mb.ShotRecord) SoundType {
	switch {
	case game.Finished:
		return SoundVictory
	case record.Sunk:
		return SoundSunk
	case record.Hit:
		return SoundHit
	default:
		return SoundMiss
	}
}

func GetSoundEffect(soundType SoundType) beep.Streamer {
	switch soundType {
	case SoundMiss:
		return CreateMissSound(sampleRate, masterVolume)
	case SoundHit:
		return CreateHitSound(sampleRate, masterVolume)
	case SoundSunk:
		return CreateSunkSound(sampleRate, masterVolume)
	case SoundVictory:
		return CreateVictorySound(sampleRate, masterVolume)
	default:
		return nil
	}
}
