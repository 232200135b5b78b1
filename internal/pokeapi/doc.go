// Package pokeapi provides an HTTP client for the public PokeAPI v2.
//
// # Endpoints
//
// Two read-only endpoints are used:
//
//   - GET {base}/pokemon?limit=N: ordered {name, url} listing, one page
//   - GET {url}: the detail payload for one entry, at the URL the listing returned
//
// # Request Handling
//
// All requests carry Accept: application/json and a pokedex User-Agent, use
// the caller's context and the client timeout, and treat any status >= 400 as
// an error. Detail requests additionally wait on a token-bucket limiter so a
// burst of card reveals stays within PokeAPI's fair-use guidance.
//
// # Payload Leniency
//
// Numeric detail fields decode through LenientInt: null, missing or
// non-numeric values become 0 instead of failing the whole payload.
//
// # Usage
//
//	client, err := pokeapi.NewClient(pokeapi.DefaultBaseURL, pokeapi.Options{})
//	if err != nil {
//		return err
//	}
//	listing, err := client.FetchListing(ctx, pokeapi.DefaultListingLimit)
//	...
//	detail, err := client.FetchDetail(ctx, listing[0].URL)
package pokeapi
