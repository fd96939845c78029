// Package browse is the query-state core of the product list.
//
// A Controller turns user intents (mount, sort change, search input, next and
// previous page) into numbered Requests, and folds completed Results back into
// a Snapshot of what the list should show. It never performs I/O itself: the
// caller runs each Request against a catalog.Executor and hands the outcome to
// Resolve. All methods are meant to be called from one event loop.
//
// Search input is debounced: SearchTextChanged returns a Ticket the caller
// redeems with SearchDue once SearchDelay has elapsed. Scheduling again, or
// clearing the search, invalidates the outstanding ticket.
//
// Every Request carries a sequence number. Only the result of the most
// recently issued request is accepted; late results of superseded requests
// are dropped, so what is shown never depends on network completion order.
package browse
