// Package ui provides semantic text formatting for oxio's terminal output.
//
// Formatters colorize content by role. When NO_COLOR is set or the terminal
// lacks color support, plain decorations are used instead:
//
//	ui.Code.Sprint("oxio sync")      // `oxio sync`
//	ui.Path.Sprint("~/.oxio.cache")  // ~/.oxio.cache
//	ui.Group.Sprint("work")          // [work]
//	ui.Name.Sprint("email")          // 'email'
//	ui.Muted.Sprint("3 items")       // (3 items)
//
// Success, Error, Warning and Info carry no decoration.
//
// Preview and AlignRight shape the group listing printed by `oxio all`.
package ui
