// pkg/core/shield.go
package core

// ShieldProfile holds a shield generator's defense and absorption data.
//
// Resist values follow the game's sign convention: positive reduces the
// damage the shield takes, negative amplifies it (a type the shield is
// weak against). Absorb is the fraction of incoming damage the shield
// face intercepts; the remainder passes through to armor and hull while
// the shield is still up. Neither field is clamped; values outside
// [0,1] appear in special content and must survive the pipeline intact.
type ShieldProfile struct {
	DisplayName  string  `json:"display_name"`
	InternalName string  `json:"internal_name"`
	Size         int     `json:"size"`
	MaxHP        float64 `json:"max_hp"`
	Regen        float64 `json:"regen"`

	ResistPhysical   float64 `json:"resist_physical"`
	ResistEnergy     float64 `json:"resist_energy"`
	ResistDistortion float64 `json:"resist_distortion"`

	AbsorbPhysical   float64 `json:"absorb_physical"`
	AbsorbEnergy     float64 `json:"absorb_energy"`
	AbsorbDistortion float64 `json:"absorb_distortion"`
}
