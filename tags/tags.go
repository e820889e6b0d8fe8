package tags

import "github.com/yohamta/donburi"

var (
	InputController = donburi.NewTag().SetName("InputController")
	InputState      = donburi.NewTag().SetName("InputState")
)
