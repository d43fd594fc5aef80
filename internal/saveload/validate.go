package saveload

import (
	"fmt"
	"math"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// ValidateSaveData checks the structural integrity of a save snapshot.
// Validation is purely structural: required blocks present, numbers
// finite, version stamped. It deliberately does not pin the version to the
// current one, so older structurally-compatible saves still load.
func ValidateSaveData(data *types.SaveGameData) error {
	if data == nil {
		return fmt.Errorf("save data is nil")
	}
	if data.Version == "" {
		return fmt.Errorf("missing version")
	}
	if data.Timestamp <= 0 {
		return fmt.Errorf("missing timestamp")
	}

	if data.Player == nil {
		return fmt.Errorf("missing player block")
	}
	if !finite(data.Player.X) || !finite(data.Player.Y) {
		return fmt.Errorf("player position is not finite")
	}
	if !finite(data.Player.VelocityX) || !finite(data.Player.VelocityY) {
		return fmt.Errorf("player velocity is not finite")
	}
	if !finite(data.Player.DistanceTraveled) || data.Player.DistanceTraveled < 0 {
		return fmt.Errorf("invalid distance traveled")
	}

	if data.World == nil {
		return fmt.Errorf("missing world block")
	}
	if data.World.CurrentSeed == "" {
		return fmt.Errorf("missing universe seed")
	}
	if data.World.UniverseResetCount < 0 {
		return fmt.Errorf("negative universe reset count")
	}

	// nil slices mean the blocks were absent from the JSON entirely, which
	// a well-formed save never produces; empty slices are fine.
	if data.Discoveries == nil {
		return fmt.Errorf("missing discoveries block")
	}
	if data.DiscoveredObjects == nil {
		return fmt.Errorf("missing discovered objects block")
	}
	for i, obj := range data.DiscoveredObjects {
		if obj.ObjectID == "" {
			return fmt.Errorf("discovered object %d has no ID", i)
		}
	}

	if data.DiscoveryManager != nil {
		if data.DiscoveryManager.IDCounter < 0 {
			return fmt.Errorf("negative discovery counter")
		}
		for i, e := range data.DiscoveryManager.Discoveries {
			if e.ID == "" {
				return fmt.Errorf("discovery entry %d has no ID", i)
			}
		}
	}

	if data.Stats.TotalPlayTime < 0 {
		return fmt.Errorf("negative play time")
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
