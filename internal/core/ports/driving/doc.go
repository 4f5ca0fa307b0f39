// Package driving defines the interfaces that external actors use to
// drive the core (primary/inbound ports). The CLI adapter and the daily
// pipeline call these; services implement them.
package driving
