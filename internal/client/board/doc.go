// Package board keeps the failure list the dashboard shows: the full
// collection fetched from the API, the filter criteria, and the filtered view
// derived from both.
//
// A Board moves between three states:
//
//	Loading --Load ok--> Ready
//	Loading --Load err--> Error --Retry--> Loading
//
// Filtering, creation and status changes keep it in Ready. An authentication
// failure from the API resets it to Loading with no data.
package board
