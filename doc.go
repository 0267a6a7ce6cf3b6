// Package uikit is a retained-mode UI core for interfaces drawn as
// instanced geometry inside a 3D scene.
//
// # Overview
//
// A Root owns a tree of Elements. Every element has a layered property
// stack (package props), a flexbox solver node (package layout) and, for
// text elements, a font and the text laid out by package text. Package
// instance turns the computed geometry into GPU instance buffers and
// package theme supplies style classes.
//
// # Quick Start
//
//	r := uikit.NewRoot(uikit.WithViewport(800, 600))
//	defer r.Close()
//
//	card := r.NewElement(props.Properties{
//	    "flexDirection": "column",
//	    "padding":       16,
//	    "gap":           8,
//	})
//	card.SetLayer(props.LayerMD, props.Properties{"padding": 32})
//	title := r.NewText("Hello", props.Properties{"fontSize": 24})
//	_ = card.Append(title)
//	_ = r.Element().Append(card)
//
//	r.Frame()
//	fmt.Println(title.Rect())
//
// # Frames
//
// Mutations never do work immediately. Root.Frame runs, in order:
//
//  1. functions queued with Root.Post (the only goroutine-safe entry),
//  2. property resolution of dirty elements, applying changed keys to
//     their solver nodes,
//  3. one solver pass if any layout input changed,
//  4. the frame listeners registered with Root.OnFrame.
//
// Root.Run drives Frame from a ticker.
//
// # Fonts
//
// A text element resolves fontFamily and fontWeight through the theme's
// font families to a font location and acquires it from a reference
// counted text.FontCache. Loading happens in the background; the font is
// delivered through Post and triggers a relayout. Unmounting an element
// releases its font.
//
// # Coordinate System
//
// Layout uses pixels with the origin at the top-left of the root and y
// increasing down. instance.Builder converts to world units with y up.
package uikit
