// Package loader wires feature packages into the HTTP application. Features
// register themselves with the Manager and are loaded in registration order
// by the start command.
package loader
