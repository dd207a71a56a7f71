// Package monitor implements the rtop terminal dashboard.
//
// The dashboard shows CPU, GPU, memory, process, network and disk panels for
// the local machine, with gradient bars and braille history graphs.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds UI state (interpolator, process panel, theme, layout size)
//   - Update: Processes messages (keystrokes, frame ticks, kill results)
//   - View: Renders the current frame to a string for display
//
// # Key Components
//
//	Model        - The Bubble Tea model containing all dashboard state
//	Interpolator - Blends the last frame toward the newest sample
//	UIState      - User choices copied onto every snapshot
//	Router       - Maps key presses to actions by input mode
//	ProcessPanel - Selection, tree, search and kill dialog state
//
// # Message Flow
//
// Sampling happens outside this package. The collector runs in its own
// goroutine and publishes snapshots on a channel:
//
//  1. frameMsg fires every 16ms
//  2. the channel is drained without blocking; the newest sample becomes
//     the interpolation target
//  3. the interpolator advances by the real elapsed time
//  4. View() renders the interpolated frame
//
// # Layout
//
// A one-line status bar sits above three columns (33/34/33%). The left
// column stacks CPU, GPU and memory, the middle holds processes and the
// right stacks network and disk. A one-line keybind bar closes the screen.
//
// # Keyboard Shortcuts
//
// Bindings are defined in keybindings.go. The kill dialog and the search
// box take precedence over the normal bindings:
//
//	q, Esc, Ctrl+C - Quit
//	↑/↓            - Select process
//	s / S          - Cycle sort / search
//	k              - Terminate selected process
//	T              - Toggle process tree
//	i              - Cycle network interface
//	t / w          - Next theme / save config
//	g              - Toggle graphs
//	?              - Toggle help overlay
package monitor
