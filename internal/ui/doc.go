// Package ui implements an interactive terminal slideshow using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [PickerView] : Browse slides from the API with fuzzy filtering
//  2. [PlayerView] : Show one slide, driven by a playback.Controller
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union type.
// Controller state changes (including autoplay ticks fired on the clock goroutine) are signalled through a buffered
// channel that the model drains with a blocking command, the same way progress updates flow from long-running tasks.
//
// Fullscreen maps to the terminal's alternate screen. The control bar is hidden while fullscreen.
// Image bodies are fetched and decoded off the update loop; every result is tagged with the slide id and
// index it was requested for and dropped when the player has moved on.
package ui
