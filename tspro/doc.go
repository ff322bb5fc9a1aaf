// Package tspro provides a Go client for the TigerStop Pro controller's
// line-based TCP protocol.
//
// # Protocol Overview
//
// The controller listens on TCP port 7071. Both directions use plain text
// lines terminated by "\n" whose fields are separated by "|".
//
//	Request:  <verb>|<field>...\n      e.g. move_to|12.5
//	Event:    <event_id>|<arg>...\n    e.g. 2|12.5
//
// The controller never answers a request directly; results arrive later as
// events (move finished, position received, error, ...).
//
// # Basic Usage
//
// Create a client and connect to a controller:
//
//	client := tspro.NewClient()
//	if err := client.Connect("192.168.1.50"); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.RequestMoveToPosition(12.5); err != nil {
//	    log.Fatal(err)
//	}
//
// # Event Handling
//
// Register a handler per event code. Handlers receive typed events:
//
//	client.SetEventHook(tspro.EventReceivedPosition, func(e tspro.Event) {
//	    pos := e.(tspro.PositionReceived)
//	    fmt.Printf("at %.3f\n", pos.Position)
//	})
//	client.SetEventHook(tspro.EventError, func(e tspro.Event) {
//	    fmt.Println(e.(tspro.ControllerError))
//	})
//	client.SetEventHook(tspro.EventDisconnected, func(e tspro.Event) {
//	    fmt.Println("disconnected:", e.(tspro.Disconnected).Err)
//	})
//
// Lines that cannot be parsed and events nobody registered for are dropped
// silently; protocol noise never stops the reader.
//
// # Thread Safety
//
// The Client type is safe for concurrent use from multiple goroutines.
// Handlers run one at a time on the client's reader goroutine.
package tspro
