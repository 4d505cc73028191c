package render

import "github.com/gdamore/tcell/v2"

// Field view palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbUnloaded   = tcell.NewRGBColor(70, 70, 90)    // Dim slate for chunks not in memory
	RgbFloor      = tcell.NewRGBColor(60, 60, 60)    // Dark gray dot for unreached floor
	RgbWall       = tcell.NewRGBColor(150, 150, 150) // Light gray
	RgbMachine    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbGoal       = tcell.NewRGBColor(255, 255, 255) // White
	RgbFollower   = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
)

// arrowColor shades an arrow by cost: near the goal bright cyan, far dim blue
func arrowColor(cost, maxCost int) tcell.Color {
	if maxCost <= 0 {
		maxCost = 1
	}
	t := 1.0 - float64(cost)/float64(maxCost)
	if t < 0 {
		t = 0
	}
	return tcell.NewRGBColor(int32(40+t*60), int32(80+t*175), int32(120+t*135))
}
