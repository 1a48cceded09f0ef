// Package preferences stores local UI preferences (currently the dark-mode
// flag) as key/value rows in the client's SQLite database.
package preferences
