package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/feed"
	"github.com/automoto/inputassign/systems"
	"github.com/automoto/inputassign/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// InputScene runs the device assignment tick for MaxPlayers controllers and
// draws the debug overlay. The hub is optional.
type InputScene struct {
	ecs     *ecs.ECS
	hub     *feed.Hub
	backend systems.InputBackend
	once    sync.Once
}

// NewInputScene creates the scene. Pass a nil hub to run without the event feed.
func NewInputScene(hub *feed.Hub) *InputScene {
	return &InputScene{hub: hub, backend: systems.NewEbitenBackend()}
}

func (is *InputScene) Update() {
	is.once.Do(is.configure)
	is.ecs.Update()
}

func (is *InputScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if is.ecs == nil {
		return
	}
	is.ecs.Draw(screen)
}

func (is *InputScene) configure() {
	is.ecs = ecs.NewECS(donburi.NewWorld())

	factory.CreateInputState(is.ecs, cfg.Input)
	factory.CreateInputControllers(is.ecs, cfg.Input.MaxPlayers)

	// Remote commands become requests before the assignment step reads them
	if is.hub != nil {
		is.ecs.AddSystem(is.hub.DrainCommands)
		is.hub.Attach(is.ecs.World)
	}

	systems.AddInputSystems(is.ecs, is.backend, systems.UpdateHotkeys)

	is.ecs.AddRenderer(cfg.Default, systems.DrawInputDebug)
}
