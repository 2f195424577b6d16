// Package server wraps http.Server with an explicitly bound listener,
// graceful shutdown, sensible timeouts and environment-driven configuration.
//
// The listener is created inside Start, so a server configured with ":0"
// still reports its real bound address through Addr — useful for tests and
// for supervisors that need to advertise the port.
//
//	srv := server.New(":8080", server.WithLogger(logger))
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
package server
