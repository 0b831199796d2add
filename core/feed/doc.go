// Package feed consumes the Universalis market websocket.
//
// A Subscriber owns one connection at a time and walks through the states
// disconnected → connecting → subscribed → receiving → (error | closed). Right after
// the handshake it sends one BSON subscribe frame per world
// (`{event: "subscribe", channel: "sales/add{world=<id>}"}`), then reads frames in a
// single loop, decodes each into a SaleBatch and hands it to the Handler before the
// next read. Slow handlers therefore apply backpressure on the socket itself.
//
// Undecodable frames are logged and skipped. Transport and handler errors end Run;
// reconnecting is left to the caller. Close (or cancelling the Run context) ends Run
// cleanly once the batch in flight has been handled.
//
// # Usage
//
//	sub := feed.NewSubscriber(cfg.Feed, feed.NewWebsocketDialer(cfg.Feed), processor, log)
//	err := sub.Run(ctx, []int64{33, 36, 42})
package feed
