// Package ui turns alarm state into what the user sees: the localized clock
// face, the armed alarm line ("Sin alarma" when idle), validation errors and
// the triggered banner. Views are drawn in a live pterm area or as plain
// lines; alarm-ctl prints state as a tablewriter table.
package ui
