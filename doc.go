// Package pandagraph resolves graph-shaped queries over an esports
// statistics REST service into lazy streams of typed vertices.
//
// The root package holds what every layer shares: the error taxonomy and
// the ErrorSink that accumulates recoverable failures during one query.
// The resolution engine itself lives in the adapter package:
//
//	c, err := client.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	a := adapter.New(c)
//	leagues := a.Start(ctx, "Leagues", adapter.Params{"game": "lol"})
//	for v, ok := leagues.Next(); ok; v, ok = leagues.Next() {
//	    fmt.Println(v.Typename())
//	}
//	if err := a.Errors().Err(); err != nil {
//	    log.Printf("partial results: %v", err)
//	}
//
// # Error Kinds
//
//   - InvalidFilterValueError: an entrypoint filter value is unsupported.
//     Recorded; that root yields nothing.
//   - EndpointError: a page fetch failed. Recorded; only the affected
//     listing is truncated.
//   - ContractError: an unknown type, edge or property name reached the
//     resolvers. Raised with panic.
package pandagraph
