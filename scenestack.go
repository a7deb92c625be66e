package kamilo

// scenestack.go implements the scene stack (spec 4.J): named scene slots,
// a queued transition processed at the pre-frame phase boundary, a
// parameter bag, and a clock counting frames since the last transition.
// Grounded almost verbatim on original_source/Kamilo/KScene.h
// (KSceneManager::addScene/setNextScene/restart/getClock,
// KSceneManagerSignalArgs' "scene-changing" callback) — the teacher (a
// single persistent Scene) has no multi-scene stack of its own, so the
// method/constructor shape here follows the teacher's general naming
// conventions applied to Kamilo's scene-manager contract.

// Scene is an application-registered slot in the scene stack. OnEnter runs
// after the stack installs it as current and writes its parameters; OnExit
// runs immediately before it is replaced.
type Scene interface {
	OnEnter(e *Engine, params NamedValues)
	OnExit(e *Engine)
}

// SceneQuerier is an optional capability a Scene may implement to request
// its own transition without an external SetNextScene call (spec 4.E's
// "query_next_scene" action-environment interface, applied at scene scope
// per spec 4.J: "ask the current scene's query_next_scene").
type SceneQuerier interface {
	QueryNextScene() (id string, params NamedValues, ok bool)
}

// SceneTransitionArgs describes an in-progress scene transition to the
// SceneChanging hook, which may rewrite NextParams before OnExit/OnEnter
// run. Grounded on original_source/Kamilo/KScene.h's
// KSceneManagerSignalArgs.
type SceneTransitionArgs struct {
	CurrentID string
	NextID    string
	Current   Scene
	// NextParams is a pointer so SceneChanging can rewrite it in place.
	NextParams *NamedValues
}

// AddScene registers scene under id. Registering only makes the scene
// eligible for SetNextScene; it does not itself run until selected.
func (e *Engine) AddScene(id string, scene Scene) {
	if e.scenes == nil {
		e.scenes = make(map[string]Scene)
	}
	e.scenes[id] = scene
}

// SetNextScene queues a transition to the scene registered under id, with
// the given parameters. The transition runs at the start of the next Tick's
// pre-frame phase (spec 4.J).
func (e *Engine) SetNextScene(id string, params NamedValues) {
	e.nextSceneID = id
	e.nextSceneParams = params
	e.hasNextScene = true
}

// Restart re-queues the current scene with its current parameters, running
// a fresh OnExit/OnEnter cycle at the next pre-frame phase.
func (e *Engine) Restart() {
	e.SetNextScene(e.currentSceneID, e.currentParams)
}

// CurrentSceneID returns the id of the scene currently installed, or "" if
// no transition has ever run.
func (e *Engine) CurrentSceneID() string { return e.currentSceneID }

// CurrentScene returns the scene currently installed, or nil.
func (e *Engine) CurrentScene() Scene { return e.currentScene }

// SceneParams returns the parameter bag most recently written into the
// current scene.
func (e *Engine) SceneParams() NamedValues { return e.currentParams }

// SceneClock returns the number of frames since the last transition. Reset
// to 0 by every transition, including Restart.
func (e *Engine) SceneClock() int { return e.sceneClock }

// runSceneTransition implements spec 4.J's transition algorithm: if a
// transition is queued, emit SceneChanging, exit the current scene, install
// the next one, reset the clock, and enter it. Otherwise ask the current
// scene whether it wants to queue its own transition; if not, advance the
// clock.
func (e *Engine) runSceneTransition() {
	if e.hasNextScene {
		args := &SceneTransitionArgs{
			CurrentID:  e.currentSceneID,
			NextID:     e.nextSceneID,
			Current:    e.currentScene,
			NextParams: &e.nextSceneParams,
		}
		if e.SceneChanging != nil {
			e.SceneChanging(args)
		}
		if e.currentScene != nil {
			e.currentScene.OnExit(e)
		}
		e.currentSceneID = e.nextSceneID
		e.currentScene = e.scenes[e.nextSceneID]
		e.currentParams = e.nextSceneParams
		e.sceneClock = 0
		e.hasNextScene = false
		e.nextSceneID = ""
		e.nextSceneParams = NamedValues{}
		if e.currentScene != nil {
			e.currentScene.OnEnter(e, e.currentParams)
		}
		return
	}

	if q, ok := e.currentScene.(SceneQuerier); ok {
		if id, params, want := q.QueryNextScene(); want {
			e.SetNextScene(id, params)
			e.sceneClock++
			return
		}
	}
	e.sceneClock++
}
