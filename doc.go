// Package main provides the entry point for eingabe.
// It runs a small Fiber web service with a form on "/" that stores free-text
// submissions in the Eingaben table through gorm and shows the most recent
// one, and a "/Liste" page listing every stored submission.
package main
