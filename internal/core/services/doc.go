// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Write-path rules that the stores do not enforce, such as taxonomy
// depth and segment bounds, are checked here.
package services
