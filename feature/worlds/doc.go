// Package worlds builds the catalog of worlds the pipeline subscribes to.
//
// At startup the Bootstrapper reads the data-center list and the world directory,
// keeps the worlds of the configured region, registers each one in the record store
// and returns the id → name Catalog used for subscriptions and log events. An empty
// region stops the process with ErrNoWorlds.
package worlds
