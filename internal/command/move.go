package command

import (
	"math"

	"github.com/novaspire/worldcore/internal/component"
)

// MoveComplete implements spec.md §4.3: "Move completes when the
// remaining distance is less than this tick's step, or when the target
// entity moves out of the optional follow_distance."
func MoveComplete(cur component.Command, currentPos, destPos component.Position, stepDist float32, targetPos *component.Position) bool {
	remaining := float32(math.Sqrt(float64(currentPos.DistanceSq(destPos))))
	if remaining < stepDist {
		return true
	}
	if targetPos != nil && cur.FollowDist > 0 {
		toTarget := float32(math.Sqrt(float64(currentPos.DistanceSq(*targetPos))))
		if toTarget > cur.FollowDist {
			return true
		}
	}
	return false
}

// Step interpolates position by up to stepDist toward dest, without
// colliding against world geometry (spec.md §1 Non-goals: "Movement is
// not physically simulated").
func Step(pos component.Position, dest component.Position, stepDist float32) component.Position {
	dx := dest.X - pos.X
	dy := dest.Y - pos.Y
	dz := dest.Z - pos.Z
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if dist <= stepDist || dist == 0 {
		return dest
	}
	scale := stepDist / dist
	return component.Position{
		X:      pos.X + dx*scale,
		Y:      pos.Y + dy*scale,
		Z:      pos.Z + dz*scale,
		ZoneID: pos.ZoneID,
	}
}

// PickupReady implements spec.md §4.3: "PickupItem first moves toward the
// drop, then, when idle for the pickup-idle duration with the target in
// reach, fires the pickup event."
func PickupReady(cur component.Command, nowTick uint64, idleDurationTicks uint64, inReach bool) bool {
	if !inReach || cur.PickupIdleAt == 0 {
		return false
	}
	return nowTick-cur.PickupIdleAt >= idleDurationTicks
}
