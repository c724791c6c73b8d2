// Package errors provides the typed error taxonomy shared by every securekit
// component. Callers branch on ErrorCode with HasCode or CodeOf instead of
// matching message strings.
package errors
