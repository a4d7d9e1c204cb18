// Package client is a typed client for the esports statistics REST API.
//
// Every listing returns one Page at a time; the caller drives pagination by
// passing Page.Next back into the same method until it is nil:
//
//	c, err := client.New(os.Getenv("PANDASCORE_TOKEN"))
//	if err != nil {
//	    return err
//	}
//	opts := client.ListOptions{}.WithSearch("name", "LEC")
//	for cur := &opts; cur != nil; {
//	    page, err := c.ListLeagues(ctx, client.LeagueOfLegends, *cur)
//	    if err != nil {
//	        return err
//	    }
//	    for _, l := range page.Items {
//	        fmt.Println(l.Name)
//	    }
//	    cur = page.Next
//	}
//
// # Transports
//
// Requests go through a Transport. HTTPTransport talks to the network;
// StatsTransport and DebugTransport wrap another Transport to collect
// statistics, report Prometheus metrics or log each request. Install
// wrappers with WithMiddleware, or replace the network entirely with
// WithTransport in tests.
package client
