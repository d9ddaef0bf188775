// Package control implements alarm-ctl: one control API call against a
// running alarm clock followed by the resulting state, as a table or JSON.
package control
