// Package kamilo is a retained-mode node-tree core for 2D/2.5D games built
// on [Ebitengine].
//
// A tree of [Node] values carries transform, colour, tag, and flag
// inheritance; an [Engine] drives the tree through a fixed per-frame
// schedule (signal delivery, system tick, gameplay tick, render build,
// present, deferred destruction); a signal bus ([Engine.Send],
// [Engine.BroadcastTag] and friends) delivers fire-and-forget messages by
// target or by tag; and a scene stack ([Engine.AddScene] and friends)
// switches between registered scenes without attaching or detaching any
// [Node] subtree.
//
// # Quick start
//
//	eng := kamilo.NewEngine(kamilo.Config{})
//	root := eng.NewNode("root")
//	device := gfx.NewEbitenDevice()
//	list := gfx.NewDrawList()
//	root.Hooks().Render = func(n *kamilo.Node) { list.AddVertices(...) }
//	eng.SetRoot(root)
//	kamilo.Run(eng, device, list, kamilo.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// # Ownership
//
// The generic [Handle] type provides reference-counted shared ownership for
// any [Disposer] payload, alongside the node tree's plain parent/child
// ownership. The engine's own resource types (textures, shaders, meshes,
// audio buffers) are not wrapped in a Handle by the engine itself.
//
// [Ebitengine]: https://ebitengine.org
package kamilo
