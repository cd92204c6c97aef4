// Package people provides a Go client for a REST "people" collection
// (json-server style: X-Total-Count paging, query-parameter filters and
// bearer-token protected writes).
//
// Every operation is synchronous: multi-request operations such as ListAll,
// DeleteByName and Import issue their requests one after another, in order.
// The client never retries and sets no timeout of its own; pass an
// http.Client through WithHTTPClient or a deadline through the context.
//
// # Quick Start
//
//	client := people.NewClient("http://localhost:3000/people/", token)
//
//	all, err := client.People.ListAll(ctx, &people.ListOptions{Limit: 50})
//
// # Errors
//
// Input rejected before a request is sent is reported as an
// *InvalidArgumentError (errors.Is(err, people.ErrInvalidArgument)).
// Failures reported by the server are *ClientError values carrying the
// status code and the server's message:
//
//	_, err := client.People.Add(ctx, "Geralt", "of Rivia", "bad", "", "10.0.0.1")
//	var ce *people.ClientError
//	if errors.As(err, &ce) {
//	    fmt.Println(ce.StatusCode, ce.Message)
//	}
//
// # Pagination
//
// ListPage returns page objects with a NextPage iterator:
//
//	page, err := client.People.ListPage(ctx, &people.ListOptions{Limit: 25})
//	if err != nil {
//	    return err
//	}
//	for {
//	    for _, p := range page.Records { /* process person */ }
//	    page, err = page.NextPage(ctx)
//	    if errors.Is(err, people.ErrNoNextPage) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package people
