// Package memo caches the results of context-aware functions by their arguments.
//
// A Cache is an explicit object: the caller constructs it, passes it where it is
// needed, and decides how it is bounded by choosing a Store. Keys are typed and
// compared with ==, so two argument tuples share an entry only when they are
// structurally equal. Key2 is the composite key for two-argument functions.
//
// Only successful results are stored. Errors are returned to the caller and the
// next call retries.
//
// Two policies govern overlapping calls for the same key:
//
//   - PolicyEventual stores the result once the call returns. Callers that
//     arrive while the first call is still running miss the cache and invoke
//     the function again. Every caller still observes an equivalent result.
//   - PolicySingleFlight lets one call run per key and hands its result to all
//     callers that arrived in the meantime.
//
// Example:
//
//	cache := memo.New[memo.Key2[int, int], []byte](memo.Config{}, nil)
//	fetch := memo.Memoize2(cache, fetchFile)
//	b, err := fetch(ctx, 4, 15) // invokes fetchFile
//	b, err = fetch(ctx, 4, 15)  // served from cache
package memo
