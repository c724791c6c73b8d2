// Package component defines the lifecycle contract shared by securekit's
// long-lived parts and a registry that starts, stops, and inspects them.
//
// # Interfaces
//
//   - Component: lifecycle (Start/Stop) and health reporting
//   - Describable: self-description without secret material
package component
