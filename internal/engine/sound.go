package engine

// Sound names a fire-and-forget sound effect.
type Sound string

const (
	SoundHit      Sound = "hit"
	SoundCollect  Sound = "collect"
	SoundPowerUp  Sound = "powerup"
	SoundWin      Sound = "win"
	SoundGameOver Sound = "gameover"
	SoundPhase    Sound = "phase"
	SoundJump     Sound = "jump"
	SoundDeal     Sound = "deal"
	SoundIterate  Sound = "iterate"
	SoundShipIt   Sound = "shipit"
	SoundBust     Sound = "bust"
	SoundUnicorn  Sound = "unicorn"
	SoundLose     Sound = "lose"
)

// SoundPlayer plays named effects. Play must not block and must never
// fail visibly.
type SoundPlayer interface {
	Play(Sound)
}

// NopSounds discards every sound.
type NopSounds struct{}

// Play does nothing.
func (NopSounds) Play(Sound) {}

// SoundFunc adapts a function to SoundPlayer.
type SoundFunc func(Sound)

// Play calls f(s).
func (f SoundFunc) Play(s Sound) { f(s) }
